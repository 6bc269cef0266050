package inline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
)

// Fixture is a generated test file on disk.
type Fixture struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Text    string  `json:"-"`
}

// Index maps test names to their fixture files.
type Index map[string]Fixture

// ExistingFixtures reads the fixtures previously generated into dir. Files
// that do not follow the fixture naming format are ignored. A missing
// directory yields an empty index.
func ExistingFixtures(dir string, outcome Outcome, ext string) (Index, error) {
	index := Index{}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return index, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != "."+ext {
			continue
		}
		id, name, ok := ParseFixtureFileName(entry.Name(), ext)
		if !ok {
			logger.Warnf("ignoring %s: not named <%0*d>_<name>.%s", filepath.Join(dir, entry.Name()), idWidth, 0, ext)
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture: %w", err)
		}

		if prev, exists := index[name]; exists {
			logger.Warnf("duplicate fixture for %s test %s: %s and %s, keeping the first",
				outcome.Keyword(), name, prev.Path, path)
			continue
		}
		index[name] = Fixture{ID: id, Name: name, Path: path, Outcome: outcome, Text: string(data)}
	}
	return index, nil
}
