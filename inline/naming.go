package inline

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixture file names are "<id>_<name>.<ext>" where id is zero padded to
// idWidth digits.
const idWidth = 4

// MaxIdentifier is the largest identifier that fits in idWidth digits.
const MaxIdentifier = 9999

// FixtureFileName builds the file name for a fixture.
func FixtureFileName(id int, name, ext string) string {
	return fmt.Sprintf("%0*d_%s.%s", idWidth, id, name, ext)
}

// ParseFixtureFileName splits a fixture file name into its identifier and
// test name. ok is false when the name does not follow the format or does not
// carry the expected extension.
func ParseFixtureFileName(fileName, ext string) (id int, name string, ok bool) {
	stem, found := strings.CutSuffix(fileName, "."+ext)
	if !found || len(stem) < idWidth+2 || stem[idWidth] != '_' {
		return 0, "", false
	}
	digits := stem[:idWidth]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, "", false
		}
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, stem[idWidth+1:], true
}

// NextIdentifier allocates the identifier for the ordinal-th (0-based) new
// test of a directory that held existing fixtures when synchronization
// started.
func NextIdentifier(existing, ordinal int) int {
	return existing + ordinal + 1
}
