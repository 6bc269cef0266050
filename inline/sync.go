package inline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"
)

// SyncOptions configures Install.
type SyncOptions struct {
	// Extension of fixture files, without the leading dot.
	Extension string
	// DryRun computes the result without touching the filesystem.
	DryRun bool
}

// Update is a fixture whose content changed.
type Update struct {
	Fixture
	Previous string `json:"-"`
}

// SyncResult describes what Install did (or would do) to one fixture
// directory.
type SyncResult struct {
	Dir       string    `json:"dir"`
	Outcome   Outcome   `json:"outcome"`
	DryRun    bool      `json:"dry_run,omitempty"`
	Created   []Fixture `json:"created,omitempty"`
	Updated   []Update  `json:"updated,omitempty"`
	Unchanged []Fixture `json:"unchanged,omitempty"`
}

// Changed reports whether any fixture was created or updated.
func (r SyncResult) Changed() bool {
	return len(r.Created)+len(r.Updated) > 0
}

// Paths returns the paths of created and updated fixtures.
func (r SyncResult) Paths() []string {
	paths := lo.Map(r.Created, func(f Fixture, _ int) string { return f.Path })
	return append(paths, lo.Map(r.Updated, func(u Update, _ int) string { return u.Path })...)
}

// Install reconciles dir with the tests of one outcome.
//
// Tests that already have a fixture keep its file name, and so its
// identifier; the file is rewritten only when the text differs. New tests
// get the next identifiers after the count of fixtures found on disk, in
// declaration order. A fixture whose test is no longer declared fails the
// run with a *DeletedTestError before anything is written, as does running
// out of identifiers (*TooManyFixturesError).
func Install(tests *Tests, outcome Outcome, dir string, opts SyncOptions) (*SyncResult, error) {
	if !opts.DryRun {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create fixture directory: %w", err)
		}
	}

	existing, err := ExistingFixtures(dir, outcome, opts.Extension)
	if err != nil {
		return nil, err
	}

	deleted := lo.Filter(lo.Keys(existing), func(name string, _ int) bool { return !tests.Has(name) })
	if len(deleted) > 0 {
		sort.Strings(deleted)
		return nil, &DeletedTestError{Outcome: outcome, Dir: dir, Names: deleted}
	}

	added := lo.CountBy(tests.All(), func(test *Test) bool {
		_, ok := existing[test.Name]
		return !ok
	})
	if added > 0 && NextIdentifier(len(existing), added-1) > MaxIdentifier {
		return nil, &TooManyFixturesError{Outcome: outcome, Dir: dir, Existing: len(existing), New: added}
	}

	result := &SyncResult{Dir: dir, Outcome: outcome, DryRun: opts.DryRun}
	created := 0
	for _, test := range tests.All() {
		fixture, ok := existing[test.Name]
		if !ok {
			id := NextIdentifier(len(existing), created)
			created++
			fixture = Fixture{
				ID:      id,
				Name:    test.Name,
				Path:    filepath.Join(dir, FixtureFileName(id, test.Name, opts.Extension)),
				Outcome: outcome,
				Text:    test.Text,
			}
			if err := writeFixture(fixture, opts.DryRun); err != nil {
				return nil, err
			}
			logger.Infof("%s %s", lo.Ternary(opts.DryRun, "would create", "created"), fixture.Path)
			result.Created = append(result.Created, fixture)
			continue
		}

		if normalizeNewlines(fixture.Text) == normalizeNewlines(test.Text) {
			result.Unchanged = append(result.Unchanged, fixture)
			continue
		}

		update := Update{Fixture: fixture, Previous: fixture.Text}
		update.Text = test.Text
		if err := writeFixture(update.Fixture, opts.DryRun); err != nil {
			return nil, err
		}
		logger.Infof("%s was not up-to-date%s", fixture.Path, lo.Ternary(opts.DryRun, "", ", updating"))
		result.Updated = append(result.Updated, update)
	}
	return result, nil
}

func writeFixture(fixture Fixture, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.WriteFile(fixture.Path, []byte(fixture.Text), 0644); err != nil {
		return fmt.Errorf("failed to write fixture %s: %w", fixture.Path, err)
	}
	return nil
}
