package main

import (
	"fmt"
	"path/filepath"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/api"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/sourcegen/config"
	"github.com/flanksource/sourcegen/inline"
	"github.com/samber/lo"
)

type SyncOptions struct {
	Config        string   `json:"config_file" flag:"config-file" help:"Config file to use instead of the layered .sourcegen.yaml lookup"`
	GrammarDir    string   `json:"grammar_dir" flag:"grammar-dir" help:"Directory of parser sources to scan for inline tests"`
	ExtraFiles    []string `json:"extra_files" flag:"extra" help:"Additional source files to scan (default: ../grammar.<ext> of the grammar dir)"`
	OkDir         string   `json:"ok_dir" flag:"ok-dir" help:"Directory for fixtures the parser must accept"`
	ErrDir        string   `json:"err_dir" flag:"err-dir" help:"Directory for fixtures the parser must reject"`
	Extension     string   `json:"extension" flag:"ext" help:"Source and fixture file extension"`
	CommentPrefix string   `json:"comment_prefix" flag:"comment-prefix" help:"Line comment prefix"`
	DryRun        bool     `json:"dry_run" flag:"dry-run" help:"Report what would change without writing fixtures"`
}

func (o SyncOptions) GetName() string { return "sync" }

func (o SyncOptions) Help() api.Text {
	return clicky.Text(`Extract inline parser tests and update the fixture directories.

Comments starting with "test <name>" become fixtures the parser must accept,
"test_err <name>" fixtures it must reject. Existing fixtures keep their
numeric prefix; new tests get the next free number.

EXAMPLES:
  # Update fixtures using .sourcegen.yaml
  sourcegen sync

  # Override directories
  sourcegen sync --grammar-dir parser/grammar --ok-dir testdata/ok --err-dir testdata/err`)
}

// CheckOptions takes the same flags as sync but never writes.
type CheckOptions SyncOptions

func (o CheckOptions) GetName() string { return "check" }

func (o CheckOptions) Help() api.Text {
	return clicky.Text(`Verify that the fixture directories match the inline tests.

Exits with code 1 when a fixture is missing or out of date.

EXAMPLES:
  sourcegen check`)
}

type ListOptions struct {
	GrammarDir    string   `json:"grammar_dir" flag:"grammar-dir" help:"Directory of parser sources to scan for inline tests"`
	ExtraFiles    []string `json:"extra_files" flag:"extra" help:"Additional source files to scan"`
	Extension     string   `json:"extension" flag:"ext" help:"Source file extension"`
	CommentPrefix string   `json:"comment_prefix" flag:"comment-prefix" help:"Line comment prefix"`
}

func (o ListOptions) GetName() string { return "list" }

func (o ListOptions) Help() api.Text {
	return clicky.Text(`List the inline tests declared in the grammar sources.

EXAMPLES:
  sourcegen list
  sourcegen list --format json`)
}

func init() {
	clicky.AddCommand(rootCmd, SyncOptions{}, runSync)
	clicky.AddCommand(rootCmd, CheckOptions{}, runCheck)
	clicky.AddCommand(rootCmd, ListOptions{}, runList)
}

func runSync(opts SyncOptions) (any, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	report, err := inline.Generate(cfg, opts.DryRun)
	if err != nil {
		return nil, err
	}
	if opts.DryRun && report.Changed() {
		exitCode = 1
	}
	return report, nil
}

func runCheck(opts CheckOptions) (any, error) {
	opts.DryRun = true
	report, err := runSync(SyncOptions(opts))
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		logger.Errorf("fixtures are out of date, run `sourcegen sync`")
	}
	return report, nil
}

func runList(opts ListOptions) (any, error) {
	cfg, err := resolveConfig(SyncOptions{
		GrammarDir:    opts.GrammarDir,
		ExtraFiles:    opts.ExtraFiles,
		Extension:     opts.Extension,
		CommentPrefix: opts.CommentPrefix,
	})
	if err != nil {
		return nil, err
	}
	return inline.Extract(cfg)
}

// resolveConfig loads the configuration for the working directory and
// applies flag overrides on top.
func resolveConfig(opts SyncOptions) (config.Config, error) {
	wd, err := getWorkingDir()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Config != "" {
		root := cfg.Root
		if cfg, err = config.LoadFile(fromWorkingDir(wd, opts.Config)); err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Root = root
	}

	// paths given as flags are relative to the working directory, not the
	// project root
	cfg = config.Merge(cfg, config.Config{
		GrammarDir:    fromWorkingDir(wd, opts.GrammarDir),
		ExtraFiles:    lo.Map(opts.ExtraFiles, func(p string, _ int) string { return fromWorkingDir(wd, p) }),
		OkDir:         fromWorkingDir(wd, opts.OkDir),
		ErrDir:        fromWorkingDir(wd, opts.ErrDir),
		Extension:     opts.Extension,
		CommentPrefix: opts.CommentPrefix,
	})
	logger.Debugf("config: %+v", cfg)
	return cfg, nil
}

func fromWorkingDir(wd, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(wd, path)
}
