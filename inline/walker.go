package inline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flanksource/commons/logger"
)

// ExtraFile is a source file scanned in addition to the source directory.
type ExtraFile struct {
	Path string
	// Optional extra files are skipped when missing instead of failing.
	Optional bool
}

// WalkOptions configures TestsFromDir.
type WalkOptions struct {
	// Extension of the source files, without the leading dot.
	Extension     string
	ExtraFiles    []ExtraFile
	CommentPrefix string
}

// TestsFromDir extracts the inline tests from every source file under dir
// (recursively, in lexical order) followed by the extra files. The first
// duplicate name within an outcome aborts the walk.
func TestsFromDir(dir string, opts WalkOptions) (*Collection, error) {
	files, err := SourceFiles(dir, opts.Extension)
	if err != nil {
		return nil, err
	}

	for _, extra := range opts.ExtraFiles {
		if _, err := os.Stat(extra.Path); err != nil {
			if os.IsNotExist(err) && extra.Optional {
				logger.Debugf("skipping missing extra file %s", extra.Path)
				continue
			}
			return nil, fmt.Errorf("extra file %s: %w", extra.Path, err)
		}
		files = append(files, extra.Path)
	}

	collection := &Collection{}
	for _, path := range files {
		if err := processFile(collection, path, opts); err != nil {
			return nil, err
		}
	}
	logger.Debugf("extracted %d ok and %d err tests from %d files under %s",
		collection.Ok.Len(), collection.Err.Len(), len(files), dir)
	return collection, nil
}

// SourceFiles lists the files under dir with the given extension, sorted.
func SourceFiles(dir, ext string) ([]string, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("source directory is not a directory: %s", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/*."+ext, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files in %s: %w", ext, dir, err)
	}
	sort.Strings(matches)

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		files = append(files, filepath.Join(dir, filepath.FromSlash(match)))
	}
	return files, nil
}

func processFile(collection *Collection, path string, opts WalkOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	tests, err := CollectTests(string(data), ParseOptions{Source: path, CommentPrefix: opts.CommentPrefix})
	if err != nil {
		return err
	}
	logger.Debugf("%s: %d inline tests", path, len(tests))

	for _, test := range tests {
		if err := collection.Add(test); err != nil {
			return err
		}
	}
	return nil
}
