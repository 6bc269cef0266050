package inline

import (
	"github.com/flanksource/sourcegen/config"
)

// GenerateReport is the outcome of a Generate run.
type GenerateReport struct {
	Tests   *Collection   `json:"tests,omitempty"`
	Results []*SyncResult `json:"results"`
}

// Changed reports whether any fixture directory was out of date.
func (r GenerateReport) Changed() bool {
	for _, result := range r.Results {
		if result.Changed() {
			return true
		}
	}
	return false
}

// Paths returns every fixture that was created or updated.
func (r GenerateReport) Paths() []string {
	var paths []string
	for _, result := range r.Results {
		paths = append(paths, result.Paths()...)
	}
	return paths
}

// Extract walks the configured grammar sources and returns their tests.
func Extract(cfg config.Config) (*Collection, error) {
	paths, optional := cfg.Extras()
	extras := make([]ExtraFile, 0, len(paths))
	for _, p := range paths {
		extras = append(extras, ExtraFile{Path: p, Optional: optional})
	}

	return TestsFromDir(cfg.Resolve(cfg.GrammarDir), WalkOptions{
		Extension:     cfg.Extension,
		ExtraFiles:    extras,
		CommentPrefix: cfg.CommentPrefix,
	})
}

// Generate extracts the inline tests and installs the ok and err fixture
// directories. All sources are read before any fixture is written.
func Generate(cfg config.Config, dryRun bool) (*GenerateReport, error) {
	tests, err := Extract(cfg)
	if err != nil {
		return nil, err
	}

	report := &GenerateReport{Tests: tests}
	dirs := map[Outcome]string{
		Accept: cfg.Resolve(cfg.OkDir),
		Reject: cfg.Resolve(cfg.ErrDir),
	}
	for _, outcome := range Outcomes {
		result, err := Install(tests.For(outcome), outcome, dirs[outcome], SyncOptions{
			Extension: cfg.Extension,
			DryRun:    dryRun,
		})
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}
