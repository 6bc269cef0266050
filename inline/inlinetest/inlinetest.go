// Package inlinetest exposes inline test generation as a go test check.
//
//	func TestInlineTests(t *testing.T) {
//		inlinetest.RequireInSync(t, inlinetest.LoadConfig(t, "."))
//	}
//
// The check passes when every fixture is up to date. Otherwise the fixtures
// are rewritten and the test fails so the change gets noticed and committed.
package inlinetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/sourcegen/config"
	"github.com/flanksource/sourcegen/inline"
)

// LoadConfig loads the configuration for dir, failing t on error.
func LoadConfig(t testing.TB, dir string) config.Config {
	t.Helper()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// RequireInSync regenerates the fixtures for cfg and fails t if any of them
// had to be created or updated, or if generation failed.
func RequireInSync(t testing.TB, cfg config.Config) *inline.GenerateReport {
	t.Helper()

	report, err := inline.Generate(cfg, false)
	if err != nil {
		t.Fatalf("inline test generation failed: %v", err)
		return report
	}
	if !report.Changed() {
		return report
	}

	for _, path := range report.Paths() {
		if rel, err := filepath.Rel(cfg.Root, path); err == nil {
			path = rel
		}
		t.Errorf("%s was not up-to-date, updating", path)
	}
	if os.Getenv("CI") != "" {
		t.Logf("NOTE: run `go test` locally and commit the updated files")
	}
	t.Errorf("some fixtures were not up to date and have been updated, re-run the tests")
	return report
}
