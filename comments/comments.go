// Package comments splits source text into runs of line comments.
//
// A block is a maximal run of consecutive lines that, once leading
// whitespace is removed, start with the comment prefix (// by default).
// The prefix, an optional doc marker and a single following space are
// stripped from every line. Blocks are produced in source order and are
// never empty.
package comments

import (
	"iter"
	"strings"
)

const DefaultPrefix = "//"

// Block is one contiguous run of line comments.
type Block struct {
	// Line is the 1-based line number of the first comment line.
	Line int `json:"line"`
	// Doc is true when any line used a doc comment marker (/// or //!).
	Doc      bool     `json:"doc,omitempty"`
	Contents []string `json:"contents"`
}

// Blocks returns a lazy sequence over the comment blocks of text. An empty
// prefix means DefaultPrefix.
func Blocks(text, prefix string) iter.Seq[Block] {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	docMarker := prefix[len(prefix)-1]

	return func(yield func(Block) bool) {
		var block Block
		for i, line := range strings.Split(text, "\n") {
			line = strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t")
			contents, ok := strings.CutPrefix(line, prefix)
			if !ok {
				if len(block.Contents) > 0 && !yield(block) {
					return
				}
				block = Block{}
				continue
			}

			if len(block.Contents) == 0 {
				block.Line = i + 1
			}
			if len(contents) > 0 && (contents[0] == docMarker || contents[0] == '!') {
				contents = contents[1:]
				block.Doc = true
			}
			contents = strings.TrimPrefix(contents, " ")
			block.Contents = append(block.Contents, contents)
		}
		if len(block.Contents) > 0 {
			yield(block)
		}
	}
}
