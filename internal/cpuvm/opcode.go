// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cpuvm

import "fmt"

// Opcode names every instruction this machine understands. Values are
// small positive integers with gaps, not a dense 0..N range, so dispatch
// is a switch rather than a table indexed by opcode.
type Opcode int32

const (
	OpLoadValue     Opcode = 1
	OpLoadAddr      Opcode = 2
	OpLoadInd       Opcode = 3
	OpLoadIdxX      Opcode = 4
	OpLoadIdxY      Opcode = 5
	OpLoadSpX       Opcode = 6
	OpStore         Opcode = 7
	OpRand          Opcode = 8
	OpPut           Opcode = 9
	OpAddX          Opcode = 10
	OpAddY          Opcode = 11
	OpSubX          Opcode = 12
	OpSubY          Opcode = 13
	OpCopyToX       Opcode = 14
	OpCopyFromX     Opcode = 15
	OpCopyToY       Opcode = 16
	OpCopyFromY     Opcode = 17
	OpCopyToSP      Opcode = 18
	OpCopyFromSP    Opcode = 19
	OpJump          Opcode = 20
	OpJumpIfZero    Opcode = 21
	OpJumpIfNotZero Opcode = 22
	OpCall          Opcode = 23
	OpReturn        Opcode = 24
	OpIncX          Opcode = 25
	OpDecX          Opcode = 26
	OpPushAC        Opcode = 27
	OpPopAC         Opcode = 28
	OpSysCall       Opcode = 29
	OpSysReturn     Opcode = 30
	OpEnd           Opcode = 50
)

// HasImmediate reports whether op occupies two cells in the program image:
// the opcode and one immediate operand after it. The jump-like opcodes
// count too -- their target is an immediate cell even though PC handling
// differs at execution time.
func (op Opcode) HasImmediate() bool {
	switch op {
	case OpLoadValue, OpLoadAddr, OpLoadInd, OpLoadIdxX, OpLoadIdxY, OpStore, OpPut,
		OpJump, OpJumpIfZero, OpJumpIfNotZero, OpCall:
		return true
	default:
		return false
	}
}

// Defined reports whether op names a real instruction.
func (op Opcode) Defined() bool {
	_, ok := mnemonics[op]
	return ok
}

// mnemonics names every opcode for tracing and disassembly.
var mnemonics = map[Opcode]string{
	OpLoadValue:     "LoadValue",
	OpLoadAddr:      "LoadAddr",
	OpLoadInd:       "LoadInd",
	OpLoadIdxX:      "LoadIdxX",
	OpLoadIdxY:      "LoadIdxY",
	OpLoadSpX:       "LoadSpX",
	OpStore:         "Store",
	OpRand:          "Rand",
	OpPut:           "Put",
	OpAddX:          "AddX",
	OpAddY:          "AddY",
	OpSubX:          "SubX",
	OpSubY:          "SubY",
	OpCopyToX:       "CopyToX",
	OpCopyFromX:     "CopyFromX",
	OpCopyToY:       "CopyToY",
	OpCopyFromY:     "CopyFromY",
	OpCopyToSP:      "CopyToSP",
	OpCopyFromSP:    "CopyFromSP",
	OpJump:          "Jump",
	OpJumpIfZero:    "JumpIfZero",
	OpJumpIfNotZero: "JumpIfNotZero",
	OpCall:          "Call",
	OpReturn:        "Return",
	OpIncX:          "IncX",
	OpDecX:          "DecX",
	OpPushAC:        "PushAC",
	OpPopAC:         "PopAC",
	OpSysCall:       "SysCall",
	OpSysReturn:     "SysReturn",
	OpEnd:           "End",
}

func (op Opcode) String() string {
	if name, ok := mnemonics[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int32(op))
}
