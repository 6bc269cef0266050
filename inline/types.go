package inline

import (
	"encoding/json"
	"fmt"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/api"
	"github.com/flanksource/clicky/api/icons"
)

// Outcome says whether the parser is expected to accept or reject a test.
type Outcome string

const (
	Accept Outcome = "ok"
	Reject Outcome = "err"
)

var Outcomes = []Outcome{Accept, Reject}

// Keyword is the declaration keyword used in source comments.
func (o Outcome) Keyword() string {
	if o == Reject {
		return "test_err"
	}
	return "test"
}

// Test is a single inline test extracted from a source comment.
type Test struct {
	Name    string  `json:"name"`
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
	Source  string  `json:"source,omitempty"`
	Line    int     `json:"line,omitempty"`
}

// Location returns source:line, or "" when the origin is unknown.
func (t Test) Location() string {
	if t.Source == "" {
		return ""
	}
	if t.Line == 0 {
		return t.Source
	}
	return fmt.Sprintf("%s:%d", t.Source, t.Line)
}

// Tests holds the tests of one outcome keyed by name, remembering
// declaration order.
type Tests struct {
	byName map[string]*Test
	order  []*Test
}

func (ts *Tests) Get(name string) (*Test, bool) {
	t, ok := ts.byName[name]
	return t, ok
}

func (ts *Tests) Has(name string) bool {
	_, ok := ts.byName[name]
	return ok
}

// All returns the tests in declaration order.
func (ts *Tests) All() []*Test {
	return ts.order
}

func (ts *Tests) Len() int {
	return len(ts.order)
}

func (ts *Tests) MarshalJSON() ([]byte, error) {
	if ts.order == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ts.order)
}

func (ts *Tests) insert(t *Test) {
	if ts.byName == nil {
		ts.byName = make(map[string]*Test)
	}
	ts.byName[t.Name] = t
	ts.order = append(ts.order, t)
}

// Collection is the set of tests extracted from a source tree, split by
// outcome. Names are unique within an outcome.
type Collection struct {
	Ok  Tests `json:"ok"`
	Err Tests `json:"err"`
}

// For returns the tests for the given outcome.
func (c *Collection) For(outcome Outcome) *Tests {
	if outcome == Reject {
		return &c.Err
	}
	return &c.Ok
}

// Add inserts t, returning a *DuplicateTestError if a test with the same name
// and outcome is already present.
func (c *Collection) Add(t *Test) error {
	tests := c.For(t.Outcome)
	if prev, ok := tests.Get(t.Name); ok {
		return &DuplicateTestError{
			Name:    t.Name,
			Outcome: t.Outcome,
			First:   prev.Location(),
			Second:  t.Location(),
		}
	}
	tests.insert(t)
	return nil
}

func (c *Collection) Len() int {
	return c.Ok.Len() + c.Err.Len()
}

func (c *Collection) Pretty() api.Text {
	text := clicky.Text(fmt.Sprintf("Inline tests (%d)", c.Len()), "font-bold")
	for _, outcome := range Outcomes {
		tests := c.For(outcome)
		style, marker := "text-green-600", clicky.Text("").Add(icons.Pass)
		if outcome == Reject {
			style, marker = "text-red-600", clicky.Text("").Add(icons.Fail)
		}
		text = text.NewLine().Append(fmt.Sprintf("  %s (%d)", outcome, tests.Len()), style)
		for _, t := range tests.All() {
			text = text.NewLine().Append("    ", "").Add(marker).Append(" "+t.Name, "")
			if loc := t.Location(); loc != "" {
				text = text.Append(" "+loc, "text-muted")
			}
		}
	}
	return text
}
