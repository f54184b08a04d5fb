package linelog

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import (
	"time"

	"github.com/npillmayer/linelog/diff"
	"github.com/npillmayer/linelog/lines"
)

// RecordText records text as the next revision of the file and returns the
// assigned revision number.
//
// A zero timestamp means "unspecified" and is replaced by the current wall
// time in milliseconds. extra may be nil; a non-nil extra is attached to the
// new revision and can later be retrieved per line via LineExtra.
//
// Recording text equal to the current head content is a no-op and returns
// MaxRev unchanged. A rapid follow-up edit which touches exactly the single
// line owned by the head revision is folded into that revision in place
// instead of growing the program.
//
// RecordText leaves the log checked out at the new revision.
func (log *LineLog) RecordText(text string, timestamp int64, extra Extra) (int, error) {
	if err := log.CheckOut(log.maxRev); err != nil {
		return 0, err
	}
	if text == log.content {
		return log.maxRev, nil
	}
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}
	blines := lines.Split(text)
	blocks := diff.LineBlocks(log.content, text)
	tracer().Debugf("line log: recording %d change blocks against rev %d", len(blocks), log.maxRev)

	if log.amendHead(blocks, blines, timestamp) {
		log.content = text
		return log.maxRev, nil
	}

	rev := log.maxRev + 1
	log.tsMap[rev] = timestamp
	if extra != nil {
		log.extraMap[rev] = extra
	}
	// Apply blocks back to front, so that the line addresses captured for a
	// block are unaffected by the blocks applied before it.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		log.editChunk(b.A1, b.A2, blines[b.B1:b.B2], rev)
	}
	log.maxRev = rev
	log.lastCheckoutRev = rev
	log.content = text
	return rev, nil
}

// amendHead implements the trivial-update fast path: a single block replacing
// one line by one line, where the affected line is the only line owned by the
// head revision. The existing LINE instruction is then rewritten in place and
// the head revision keeps its number, with a refreshed timestamp.
func (log *LineLog) amendHead(blocks []diff.Block, blines []string, timestamp int64) bool {
	if len(blocks) != 1 {
		return false
	}
	b := blocks[0]
	if b.A2-b.A1 != 1 || b.B2-b.B1 != 1 {
		return false
	}
	if log.lines[b.A1].Rev != log.maxRev || log.countRev(log.maxRev) != 1 {
		return false
	}
	pc := log.lines[b.A1].Pc
	inst, ok := log.code[pc].(lineInst)
	assert(ok, "line log: cached line does not address a LINE instruction")
	inst.data = blines[b.B1]
	log.code[pc] = inst
	log.lines[b.A1].Data = inst.data
	log.tsMap[log.maxRev] = timestamp
	return true
}

// countRev counts the lines of the current snapshot introduced by rev.
func (log *LineLog) countRev(rev int) int {
	n := 0
	for _, line := range log.lines {
		if line.Rev == rev {
			n++
		}
	}
	return n
}

// editChunk splices one change block into the program: lines a1…a2 of the
// cached view are replaced by blines, owned by rev.
//
// The new instructions are appended, and the single instruction at the
// address of line a1 is redirected into them. The displaced original is
// relocated behind the new chunk, followed by a jump back to its successor,
// so interpretation of revisions below rev is unaffected.
func (log *LineLog) editChunk(a1, a2 int, blines []string, rev int) {
	assert(a1 <= a2, "line log: change block out of order")
	assert(a2 < len(log.lines), "line log: change block beyond end of view")

	start := len(log.code)
	a1pc := log.lines[a1].Pc
	if len(blines) > 0 {
		log.code = append(log.code, jltInst{rev: rev, pc: start + len(blines) + 1})
		for _, data := range blines {
			log.code = append(log.code, lineInst{rev: rev, data: data})
		}
	}
	if a1 < a2 {
		a2pc := log.lines[a2-1].Pc + 1
		log.code = append(log.code, jgeInst{rev: rev, pc: a2pc})
	}

	// Relocate the instruction at a1pc behind the chunk and redirect its old
	// address into the chunk. The line cache entry for a1 follows the
	// relocated instruction; for a pure insertion it survives the reslicing
	// below.
	tail := len(log.code)
	log.lines[a1].Pc = tail
	moved := log.code[a1pc]
	log.code = append(log.code, moved)
	switch moved.(type) {
	case jumpInst, endInst:
		// moved carries its continuation itself
	default:
		log.code = append(log.code, jumpInst{pc: a1pc + 1})
	}
	log.code[a1pc] = jumpInst{pc: start}

	newlines := make([]LineInfo, len(blines))
	for i, data := range blines {
		newlines[i] = LineInfo{Data: data, Rev: rev, Pc: start + 1 + i}
	}
	log.lines = append(log.lines[:a1], append(newlines, log.lines[a2:]...)...)
}
