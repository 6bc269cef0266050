package inline

import (
	"fmt"
	"strings"
)

// DuplicateTestError is returned when the same test name is declared twice
// within one outcome.
type DuplicateTestError struct {
	Name    string
	Outcome Outcome
	First   string
	Second  string
}

func (e *DuplicateTestError) Error() string {
	msg := fmt.Sprintf("duplicate %s test: %s", e.Outcome, e.Name)
	if e.First != "" && e.Second != "" {
		msg += fmt.Sprintf(" (declared at %s and %s)", e.First, e.Second)
	}
	return msg
}

// DeletedTestError is returned when fixture files exist for tests that are no
// longer declared in source. Deleting a fixture has to be done by hand.
type DeletedTestError struct {
	Outcome Outcome
	Dir     string
	Names   []string
}

func (e *DeletedTestError) Error() string {
	noun := "test is"
	if len(e.Names) > 1 {
		noun = "tests are"
	}
	return fmt.Sprintf("%s %s deleted from source but still present in %s: %s",
		e.Outcome, noun, e.Dir, strings.Join(e.Names, ", "))
}

// TooManyFixturesError is returned when a directory would need identifiers
// beyond MaxIdentifier.
type TooManyFixturesError struct {
	Outcome  Outcome
	Dir      string
	Existing int
	New      int
}

func (e *TooManyFixturesError) Error() string {
	return fmt.Sprintf("%s fixtures in %s would exceed identifier %d: %d existing, %d new",
		e.Outcome, e.Dir, MaxIdentifier, e.Existing, e.New)
}

// EmptyTestBodyError is returned for a test declaration with no body.
type EmptyTestBodyError struct {
	Name     string
	Outcome  Outcome
	Location string
}

func (e *EmptyTestBodyError) Error() string {
	return fmt.Sprintf("%s %s has an empty body%s", e.Outcome.Keyword(), e.Name, at(e.Location))
}

// InvalidTestNameError is returned when a declared name cannot be used as a
// fixture file name.
type InvalidTestNameError struct {
	Name     string
	Reason   string
	Location string
}

func (e *InvalidTestNameError) Error() string {
	return fmt.Sprintf("invalid test name %q: %s%s", e.Name, e.Reason, at(e.Location))
}

func at(location string) string {
	if location == "" {
		return ""
	}
	return " at " + location
}
