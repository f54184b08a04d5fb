/*
Package diff reduces two texts to the aligned change blocks between their
line sequences.

The package is a thin adapter over a line-granular sequence matcher. It does
not render patches; it exists to tell a line log editor which line ranges of
an old text are replaced by which line ranges of a new text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package diff

import (
	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/npillmayer/linelog/lines"
)

// Block is one aligned change: lines [A1,A2) of the old text are replaced by
// lines [B1,B2) of the new text. One of the ranges may be empty (pure
// insertion or pure deletion), but never both.
type Block struct {
	A1, A2 int
	B1, B2 int
}

// LineBlocks splits a and b into lines and returns the change blocks between
// them, ascending in A1 and non-overlapping. Applying the blocks to a's
// lines, left to right, reproduces b. Equal texts yield no blocks.
func LineBlocks(a, b string) []Block {
	return Blocks(lines.Split(a), lines.Split(b))
}

// Blocks returns the change blocks between two line sequences.
func Blocks(a, b []string) []Block {
	matcher := difflib.NewMatcher(a, b)
	var blocks []Block
	for _, op := range matcher.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		blocks = append(blocks, Block{A1: op.I1, A2: op.I2, B1: op.J1, B2: op.J2})
	}
	return blocks
}
