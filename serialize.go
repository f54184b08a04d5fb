package linelog

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
)

// instJSON is the wire form of one instruction. Fields beyond op are present
// exactly where the opcode defines them.
type instJSON struct {
	Op   int    `json:"op"`
	Rev  int    `json:"rev,omitempty"`
	Pc   int    `json:"pc,omitempty"`
	Data string `json:"data,omitempty"`
}

// logJSON is the decompressed wire form of a complete log. Go maps with
// integer keys marshal to JSON objects with stringified keys, which is
// exactly the published format.
type logJSON struct {
	Code     []instJSON    `json:"code"`
	TsMap    map[int]int64 `json:"tsMap"`
	ExtraMap map[int]Extra `json:"extraMap"`
}

// Export serializes the log as a gzip-compressed JSON buffer containing the
// program and the per-revision metadata maps. The buffer is self-describing
// and round-trips through Import bit-compatibly across implementations.
func (log *LineLog) Export() ([]byte, error) {
	env := logJSON{
		Code:     make([]instJSON, len(log.code)),
		TsMap:    log.tsMap,
		ExtraMap: log.extraMap,
	}
	for i, inst := range log.code {
		switch it := inst.(type) {
		case jumpInst:
			env.Code[i] = instJSON{Op: opJ, Pc: it.pc}
		case jgeInst:
			env.Code[i] = instJSON{Op: opJGE, Rev: it.rev, Pc: it.pc}
		case jltInst:
			env.Code[i] = instJSON{Op: opJL, Rev: it.rev, Pc: it.pc}
		case lineInst:
			env.Code[i] = instJSON{Op: opLine, Rev: it.rev, Data: it.data}
		case endInst:
			env.Code[i] = instJSON{Op: opEnd}
		}
	}
	var bf bytes.Buffer
	zw := gzip.NewWriter(&bf)
	if err := json.NewEncoder(zw).Encode(env); err != nil {
		return nil, fmt.Errorf("line log export: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("line log export: %w", err)
	}
	return bf.Bytes(), nil
}

// Import adopts a buffer produced by Export (of this or any conforming
// implementation), replacing the receiver's complete state. The maximum
// revision is recomputed from the program and the view caches are primed by
// checking out that revision.
//
// Malformed input, invalid jump targets and unknown opcodes yield an error
// wrapping ErrDecode, before any state is adopted. A program which decodes
// but does not terminate surfaces as ErrCorruptProgram from the checkout.
func (log *LineLog) Import(data []byte) error {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	var env logJSON
	if err := json.NewDecoder(zr).Decode(&env); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := zr.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(env.Code) == 0 {
		return fmt.Errorf("%w: empty program", ErrDecode)
	}
	code := make([]instruction, len(env.Code))
	maxRev := 0
	for i, in := range env.Code {
		switch in.Op {
		case opJ:
			if in.Pc < 0 || in.Pc >= len(env.Code) {
				return fmt.Errorf("%w: jump target %d outside program", ErrDecode, in.Pc)
			}
			code[i] = jumpInst{pc: in.Pc}
		case opJGE:
			if in.Pc < 0 || in.Pc >= len(env.Code) {
				return fmt.Errorf("%w: jump target %d outside program", ErrDecode, in.Pc)
			}
			code[i] = jgeInst{rev: in.Rev, pc: in.Pc}
			if in.Rev > maxRev {
				maxRev = in.Rev
			}
		case opJL:
			if in.Pc < 0 || in.Pc >= len(env.Code) {
				return fmt.Errorf("%w: jump target %d outside program", ErrDecode, in.Pc)
			}
			code[i] = jltInst{rev: in.Rev, pc: in.Pc}
			if in.Rev > maxRev {
				maxRev = in.Rev
			}
		case opLine:
			code[i] = lineInst{rev: in.Rev, data: in.Data}
		case opEnd:
			code[i] = endInst{}
		default:
			return fmt.Errorf("%w: unknown opcode %d", ErrDecode, in.Op)
		}
	}
	log.code = code
	log.tsMap = env.TsMap
	if log.tsMap == nil {
		log.tsMap = make(map[int]int64)
	}
	log.extraMap = env.ExtraMap
	if log.extraMap == nil {
		log.extraMap = make(map[int]Extra)
	}
	log.maxRev = maxRev
	log.lastCheckoutRev = -1
	log.rangeView = false
	return log.CheckOut(maxRev)
}
