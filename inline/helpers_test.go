package inline

import (
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
)

// writeTree materializes a txtar archive under dir.
func writeTree(dir, archive string) error {
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// snapshot returns the contents of every file under dir keyed by slash
// separated relative path.
func snapshot(dir string) (map[string]string, error) {
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	return files, err
}

func testsOf(outcome Outcome, pairs ...string) *Tests {
	c := &Collection{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := c.Add(&Test{Name: pairs[i], Text: pairs[i+1], Outcome: outcome}); err != nil {
			panic(err)
		}
	}
	return c.For(outcome)
}
