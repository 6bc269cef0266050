package inline

import (
	"strings"

	"github.com/flanksource/clicky"
	"github.com/flanksource/clicky/api"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders a line oriented diff from old to new.
func lineDiff(oldText, newText string) api.Text {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	result := clicky.Text("")
	for _, diff := range diffs {
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				result = result.Append("-", "text-red-700").Append(line, "text-red-500").NewLine()
			case diffmatchpatch.DiffInsert:
				result = result.Append("+", "text-green-700").Append(line, "text-green-500").NewLine()
			default:
				result = result.Append(" "+line, "text-gray-300").NewLine()
			}
		}
	}
	return result
}

// normalizeNewlines lets fixtures checked out with CRLF line endings compare
// equal to freshly extracted text.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
