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

import "github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"

// execute decodes IR and retires one instruction, returning halted=true once
// opcode 50 has emitted EXIT. PC discipline: instructions with an immediate
// advance PC twice (fetchImmediate), plain instructions advance it once
// here, and jump-like instructions (20, 21/22 taken, 23, 24) set PC directly
// and skip the generic advance.
func (c *CPU) execute() (halted bool, err error) {
	op := Opcode(c.IR)
	switch op {
	case OpLoadValue:
		v, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpLoadAddr:
		addr, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		v, err := c.read(addr)
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpLoadInd:
		addr, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		ptr, err := c.read(addr)
		if err != nil {
			return false, err
		}
		v, err := c.read(ptr)
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpLoadIdxX:
		addr, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		v, err := c.read(addr + c.X)
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpLoadIdxY:
		addr, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		v, err := c.read(addr + c.Y)
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpLoadSpX:
		c.PC++
		v, err := c.read(c.SP + c.X)
		if err != nil {
			return false, err
		}
		c.AC = v

	case OpStore:
		addr, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		if err := c.write(addr, c.AC); err != nil {
			return false, err
		}

	case OpRand:
		c.PC++
		c.AC = int32(c.rng.Intn(100) + 1)

	case OpPut:
		port, err := c.fetchImmediate()
		if err != nil {
			return false, err
		}
		if err := c.out.Put(port, c.AC); err != nil {
			return false, err
		}

	case OpAddX:
		c.PC++
		c.AC += c.X
	case OpAddY:
		c.PC++
		c.AC += c.Y
	case OpSubX:
		c.PC++
		c.AC -= c.X
	case OpSubY:
		c.PC++
		c.AC -= c.Y

	case OpCopyToX:
		c.PC++
		c.X = c.AC
	case OpCopyFromX:
		c.PC++
		c.AC = c.X
	case OpCopyToY:
		c.PC++
		c.Y = c.AC
	case OpCopyFromY:
		c.PC++
		c.AC = c.Y

	case OpCopyToSP:
		c.PC++
		c.SP = c.AC
	case OpCopyFromSP:
		c.PC++
		c.AC = c.SP

	case OpJump:
		target, _, err := c.fetchJumpTarget()
		if err != nil {
			return false, err
		}
		c.PC = target

	case OpJumpIfZero:
		target, operandAddr, err := c.fetchJumpTarget()
		if err != nil {
			return false, err
		}
		if c.AC == 0 {
			c.PC = target
		} else {
			c.PC = operandAddr + 1
		}

	case OpJumpIfNotZero:
		target, operandAddr, err := c.fetchJumpTarget()
		if err != nil {
			return false, err
		}
		if c.AC != 0 {
			c.PC = target
		} else {
			c.PC = operandAddr + 1
		}

	case OpCall:
		target, operandAddr, err := c.fetchJumpTarget()
		if err != nil {
			return false, err
		}
		c.SP--
		if err := c.write(c.SP, operandAddr); err != nil {
			return false, err
		}
		c.PC = target

	case OpReturn:
		retAddr, err := c.read(c.SP)
		if err != nil {
			return false, err
		}
		c.SP++
		c.PC = retAddr + 1

	case OpIncX:
		c.PC++
		c.X++
	case OpDecX:
		c.PC++
		c.X--

	case OpPushAC:
		c.PC++
		c.SP--
		if err := c.write(c.SP, c.AC); err != nil {
			return false, err
		}

	case OpPopAC:
		c.PC++
		v, err := c.read(c.SP)
		if err != nil {
			return false, err
		}
		c.AC = v
		c.SP++

	case OpSysCall:
		c.PC++
		if err := c.enterPrivileged(memlayout.SyscallEntry); err != nil {
			return false, err
		}

	case OpSysReturn:
		if err := c.sysReturn(); err != nil {
			return false, err
		}

	case OpEnd:
		c.link.Exit()
		halted = true

	default:
		return false, &DecodeError{Value: c.IR}
	}
	return halted, nil
}

// fetchJumpTarget implements the PC discipline shared by every jump-like
// instruction (20, 21, 22, 23): PC advances past the opcode to the address
// of the immediate cell, which is returned as operandAddr alongside the
// fetched target value. Unlike fetchImmediate, PC is left pointing AT the
// operand cell -- the caller decides whether to replace PC with target, skip
// past operandAddr, or (Call) save operandAddr itself as the return address.
// The value Call saves is the address of its own immediate operand, so
// Return's "+1" lands on the instruction following the Call.
func (c *CPU) fetchJumpTarget() (target, operandAddr int32, err error) {
	c.PC++
	operandAddr = c.PC
	target, err = c.read(operandAddr)
	return target, operandAddr, err
}

// enterPrivileged is the shared save/transfer mechanism for both the timer
// interrupt and SysCall: save PC then SP onto the system stack, point SP at
// the saved-SP slot (the lower of the two), and transfer control to entry. The caller is responsible
// for any PC advance that should happen before the save (SysCall has none of
// its own operand, so its caller advances PC past the opcode first; the
// timer interrupt fires between instructions, so PC already points at the
// next one to fetch).
func (c *CPU) enterPrivileged(entry int32) error {
	c.Mode = Kernel
	if err := c.write(memlayout.TimerSaveSlotPC, c.PC); err != nil {
		return err
	}
	if err := c.write(memlayout.TimerSaveSlotSP, c.SP); err != nil {
		return err
	}
	c.SP = memlayout.TimerSaveSlotSP
	c.PC = entry
	return nil
}

// sysReturn restores the register pair enterPrivileged saved, regardless of
// whether the kernel was entered via SysCall or the timer interrupt: mem[SP]
// holds the saved SP, mem[SP+1] the saved PC, mirroring the save order
// (PC at the higher address, SP immediately below it).
func (c *CPU) sysReturn() error {
	savedSP, err := c.read(c.SP)
	if err != nil {
		return err
	}
	savedPC, err := c.read(c.SP + 1)
	if err != nil {
		return err
	}
	c.SP = savedSP
	c.PC = savedPC
	c.Mode = User
	return nil
}
