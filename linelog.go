package linelog

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import "strings"

// Extra is opaque per-revision metadata, attached by clients when recording a
// revision. Extras survive Export/Import as long as their values are
// JSON-compatible.
type Extra map[string]interface{}

// LineInfo describes one line of a checked-out view.
//
// Rev is the revision that introduced the line, Pc the address of the LINE
// instruction that emitted it. Deleted is meaningful for range checkouts
// only: it flags lines which are not part of the end revision's snapshot.
// The last entry of a view is always a sentinel with empty Data and Rev 0.
type LineInfo struct {
	Data    string
	Rev     int
	Pc      int
	Deleted bool
}

// LineLog is the complete edit history of a single text file, compiled into
// an instruction program.
//
// The zero value is not usable; create instances with New. A LineLog is
// mutated by RecordText and Import only, and is not safe for concurrent
// mutation.
type LineLog struct {
	code            []instruction // the program; append-mostly
	tsMap           map[int]int64 // revision -> commit timestamp (ms)
	extraMap        map[int]Extra // revision -> attached metadata
	maxRev          int           // highest recorded revision
	lastCheckoutRev int           // revision of the cached view
	rangeView       bool          // cached view is a union view
	lines           []LineInfo    // cached view, derived from code
	content         string        // cached view, concatenated line data
}

// New creates an empty LineLog: program [END], checked out at revision 0,
// empty content.
func New() *LineLog {
	log := &LineLog{
		code:     []instruction{endInst{}},
		tsMap:    make(map[int]int64),
		extraMap: make(map[int]Extra),
	}
	log.lines = []LineInfo{{Pc: 0}}
	return log
}

// MaxRev returns the highest revision number ever recorded, 0 for an empty
// log.
func (log *LineLog) MaxRev() int {
	return log.maxRev
}

// Content returns the text of the currently checked-out view. For a range
// checkout this includes the woven-in deleted lines.
func (log *LineLog) Content() string {
	return log.content
}

// Lines returns the currently checked-out view, one LineInfo per line plus
// the trailing sentinel. The returned slice is the internal cache; callers
// must not modify it.
func (log *LineLog) Lines() []LineInfo {
	return log.lines
}

// CheckOut replaces the cached view with the snapshot of revision rev.
// Revisions beyond MaxRev are clamped. Checking out the revision that is
// already checked out is a no-op.
func (log *LineLog) CheckOut(rev int) error {
	if rev > log.maxRev {
		rev = log.maxRev
	}
	if rev == log.lastCheckoutRev && !log.rangeView {
		return nil
	}
	log.lastCheckoutRev = rev
	emitted, err := log.execute(rev, rev, nil)
	if err != nil {
		return err
	}
	log.rangeView = false
	log.setLines(emitted)
	return nil
}

// CheckOutRange replaces the cached view with the union view of the revision
// range [start, rev]: the snapshot of rev with all lines deleted after start
// woven back in and flagged Deleted. Revisions beyond MaxRev are clamped.
func (log *LineLog) CheckOutRange(start, rev int) error {
	if rev > log.maxRev {
		rev = log.maxRev
	}
	log.lastCheckoutRev = rev
	snapshot, err := log.execute(rev, rev, nil)
	if err != nil {
		return err
	}
	present := make(map[int]bool, len(snapshot))
	for _, line := range snapshot {
		present[line.Pc] = true
	}
	emitted, err := log.execute(start, rev, present)
	if err != nil {
		return err
	}
	log.rangeView = true
	log.setLines(emitted)
	return nil
}

// setLines adopts a freshly executed view and recomputes the content cache.
func (log *LineLog) setLines(emitted []LineInfo) {
	log.lines = emitted
	var bf strings.Builder
	for _, line := range emitted {
		bf.WriteString(line.Data)
	}
	log.content = bf.String()
}

// LineTimestamp returns the commit timestamp (in milliseconds) of the
// revision that introduced line i of the current view, or 0 if i addresses
// the sentinel or lies outside the view.
func (log *LineLog) LineTimestamp(i int) int64 {
	if i < 0 || i >= len(log.lines)-1 {
		return 0
	}
	return log.tsMap[log.lines[i].Rev]
}

// LineExtra returns the metadata attached to the revision that introduced
// line i of the current view. Out-of-range indices and revisions without
// metadata yield an empty Extra.
func (log *LineLog) LineExtra(i int) Extra {
	if i < 0 || i >= len(log.lines)-1 {
		return Extra{}
	}
	if extra, ok := log.extraMap[log.lines[i].Rev]; ok {
		return extra
	}
	return Extra{}
}
