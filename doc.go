/*
Package linelog stores the complete edit history of a single text file as a
small interpreted program.

# LineLog

A line log keeps every revision of a text, yet it is neither a list of
snapshots nor a list of deltas. Instead, the history is compiled into a
miniature program for a tiny virtual machine with five instructions.
Interpreting the program under a pair of revision parameters reconstructs the
text of any recorded revision in a single linear scan, and every emitted line
carries the revision that introduced it. Annotating a file ("blame") therefore
is not an extra computation, it falls out of a checkout for free.

The trick, due to Mercurial's linelog format, is to encode an edit not as data
but as control flow. Replacing lines a1…a2 of the head revision by new lines
appends a short chunk to the program

	JL   r, (past the new lines)   ; taken for revisions < r
	LINE r, "…"                    ; the new lines
	…
	JGE  r, (past the old lines)   ; taken for revisions >= r

and redirects a single instruction of the old program into the chunk. Old
instructions are never removed, so every revision ever recorded stays
reachable. The program grows with the size of the edits, not with the size of
the file times the number of revisions.

Interpreting with start == end == r yields the snapshot of revision r.
Interpreting a range start < end yields a union view: the text of end with the
lines deleted since start woven back in and flagged, which is the raw material
for "show what this range of history touched" displays.

Storing a history this way has convenient complexity properties:

	Operation            |  LineLog          |  Snapshot list
	---------------------+-------------------+---------------
	Record a revision    |  O(diff)          |  O(n)
	Checkout, any rev    |  O(program size)  |  O(n)
	Annotate (blame)     |  O(program size)  |  O(n * revs)
	Union of a range     |  O(program size)  |  O(n * revs)

A LineLog instance is a plain in-memory object. It can be serialized to a
self-describing, gzip-compressed JSON buffer and restored from it; see Export
and Import. The companion packages lines and diff hold the pure helpers the
editor is built on, package gitimport feeds a log from the linear history of a
file in a git repository, and package annotate renders checked-out views for
humans.

A LineLog is strictly sequential: no operation suspends, none is safe for
concurrent mutation. Readers after a checkout may share an instance if the
host synchronizes externally.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/
package linelog

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'linelog'
func tracer() tracing.Trace {
	return tracing.Select("linelog")
}

// LineLogError is an error type for the linelog module.
type LineLogError string

func (e LineLogError) Error() string {
	return string(e)
}

// ErrCorruptProgram signals that interpreting the instruction program did not
// reach END within the step budget, or hit an instruction the interpreter
// does not know. The program is damaged beyond repair.
const ErrCorruptProgram = LineLogError("corrupt program: execution does not terminate")

// ErrDecode is flagged whenever a serialized buffer cannot be adopted, be it
// invalid gzip, invalid JSON or a structural mismatch.
const ErrDecode = LineLogError("cannot decode line log buffer")

// assert panics with msg if condition does not hold. Reserved for conditions
// which cannot occur unless a caller broke a documented invariant.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
