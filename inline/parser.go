package inline

import (
	"fmt"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/sourcegen/comments"
)

// ParseOptions controls how source text is turned into tests.
type ParseOptions struct {
	// Source labels the text in test locations and errors, usually a path.
	Source string
	// CommentPrefix defaults to comments.DefaultPrefix.
	CommentPrefix string
}

// ParseBlock interprets a comment block as a test declaration. A first line
// of "test <name>" declares an Accept test and "test_err <name>" a Reject
// test; any other block returns (nil, nil). The body is every following line
// plus a trailing newline.
func ParseBlock(block comments.Block, source string) (*Test, error) {
	if len(block.Contents) == 0 {
		return nil, nil
	}

	first := block.Contents[0]
	var outcome Outcome
	var name string
	if rest, ok := strings.CutPrefix(first, Reject.Keyword()+" "); ok {
		outcome, name = Reject, rest
	} else if rest, ok := strings.CutPrefix(first, Accept.Keyword()+" "); ok {
		outcome, name = Accept, rest
	} else {
		return nil, nil
	}

	test := &Test{
		Name:    strings.TrimRight(name, " \t"),
		Outcome: outcome,
		Source:  source,
		Line:    block.Line,
	}
	if err := validateName(test.Name); err != nil {
		return nil, &InvalidTestNameError{Name: test.Name, Reason: err.Error(), Location: test.Location()}
	}

	lines := append(append([]string{}, block.Contents[1:]...), "")
	test.Text = strings.Join(lines, "\n")
	if strings.TrimSpace(test.Text) == "" {
		return nil, &EmptyTestBodyError{Name: test.Name, Outcome: outcome, Location: test.Location()}
	}
	return test, nil
}

// CollectTests extracts every test declared in the comments of text, in
// source order.
func CollectTests(text string, opts ParseOptions) ([]*Test, error) {
	var tests []*Test
	for block := range comments.Blocks(text, opts.CommentPrefix) {
		test, err := ParseBlock(block, opts.Source)
		if err != nil {
			return nil, err
		}
		if test == nil {
			continue
		}
		logger.Tracef("found %s %s at %s", test.Outcome.Keyword(), test.Name, test.Location())
		tests = append(tests, test)
	}
	return tests, nil
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name is empty")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("name contains a path separator")
	case name == "." || name == "..":
		return fmt.Errorf("name is a relative path")
	}
	return nil
}
