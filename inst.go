package linelog

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

// Wire opcodes of the instruction set. The numbering is part of the
// serialization format and must not change.
const (
	opJ    = 0 // unconditional jump
	opJGE  = 1 // jump if start revision >= rev
	opJL   = 2 // jump if end revision < rev
	opLine = 3 // emit a line
	opEnd  = 4 // emit the sentinel line and halt
)

// instruction is the closed set of program instructions. Each variant carries
// exactly the fields its opcode needs, so that invalid combinations are
// unrepresentable. The interpreter and the serializer switch exhaustively
// over the variants.
type instruction interface {
	opcode() int
}

// jumpInst continues interpretation at pc.
type jumpInst struct {
	pc int
}

// jgeInst jumps to pc if the start revision is at least rev.
type jgeInst struct {
	rev int
	pc  int
}

// jltInst jumps to pc if the end revision is below rev.
type jltInst struct {
	rev int
	pc  int
}

// lineInst emits one line of text, tagged with the revision that introduced it.
// data retains a trailing newline, if the line has one.
type lineInst struct {
	rev  int
	data string
}

// endInst emits the sentinel line and halts interpretation.
type endInst struct{}

func (inst jumpInst) opcode() int { return opJ }
func (inst jgeInst) opcode() int  { return opJGE }
func (inst jltInst) opcode() int  { return opJL }
func (inst lineInst) opcode() int { return opLine }
func (inst endInst) opcode() int  { return opEnd }
