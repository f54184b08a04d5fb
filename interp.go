package linelog

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

// execute interprets the program from pc 0 and collects the emitted lines,
// terminating on END.
//
// With startRev == endRev the result is the snapshot of that revision. With
// startRev < endRev and a present set (LINE addresses of the end snapshot)
// the result is the union view over the range, with lines absent from the
// end snapshot flagged Deleted.
//
// The step count is bounded by 2 * len(code). A correctly constructed
// program reaches END well within that bound, since every edit contributes a
// finite chain of forward jumps; exceeding it means the program is corrupt.
func (log *LineLog) execute(startRev, endRev int, present map[int]bool) ([]LineInfo, error) {
	emitted := make([]LineInfo, 0, len(log.lines))
	budget := 2 * len(log.code)
	pc := 0
	for step := 0; step < budget; step++ {
		if pc < 0 || pc >= len(log.code) {
			T().Errorf("line log: pc %d outside program of length %d", pc, len(log.code))
			return nil, ErrCorruptProgram
		}
		switch inst := log.code[pc].(type) {
		case jumpInst:
			pc = inst.pc
		case jgeInst:
			if startRev >= inst.rev {
				pc = inst.pc
			} else {
				pc++
			}
		case jltInst:
			if endRev < inst.rev {
				pc = inst.pc
			} else {
				pc++
			}
		case lineInst:
			emitted = append(emitted, LineInfo{
				Data:    inst.data,
				Rev:     inst.rev,
				Pc:      pc,
				Deleted: hidden(present, pc),
			})
			pc++
		case endInst:
			emitted = append(emitted, LineInfo{Pc: pc, Deleted: hidden(present, pc)})
			return emitted, nil
		default:
			T().Errorf("line log: unknown instruction at pc %d", pc)
			return nil, ErrCorruptProgram
		}
	}
	T().Errorf("line log: step budget %d exhausted", budget)
	return nil, ErrCorruptProgram
}

// hidden flags a line as deleted: emitted by the interpreter, but not part of
// the end revision's snapshot. Without a present set no line is hidden.
func hidden(present map[int]bool, pc int) bool {
	if present == nil {
		return false
	}
	return !present[pc]
}
