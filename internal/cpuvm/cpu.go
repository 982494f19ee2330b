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

// Package cpuvm implements the CPU context: the fetch-decode-execute loop,
// the register file, and the mode/timer/interrupt state machine. It never
// touches the memory store directly -- every access goes through a
// bus.Link, round-tripping to whichever goroutine is running the Memory
// context on the other end.
package cpuvm

import (
	"math/rand"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"
	"github.com/charlesdungy/cpu-memory-simulation/internal/teletype"
	"github.com/charlesdungy/cpu-memory-simulation/internal/tracelog"
)

// Mode is the CPU's privilege flag.
type Mode bool

const (
	User   Mode = false
	Kernel Mode = true
)

func (m Mode) String() string {
	if m == Kernel {
		return "kernel"
	}
	return "user"
}

// CPU holds the architectural register file and drives the fetch-decode-
// execute loop over a bus.Link. CPU is the exclusive owner of this state;
// nothing outside a running CPU ever mutates it.
type CPU struct {
	PC, SP, IR, AC, X, Y int32
	Mode                 Mode
	Timer                uint64

	link   *bus.Link
	out    *teletype.Writer
	rng    *rand.Rand
	period uint64
}

// New creates a CPU wired to link and out, with registers at their reset
// values (PC=0, SP=1000, user mode, timer=0). period is the timer
// interrupt interval in retired instructions; 0 disables the timer
// entirely. seed drives the opcode-8 PRNG, seeded once here rather than
// per call.
func New(link *bus.Link, out *teletype.Writer, period uint64, seed int64) *CPU {
	return &CPU{
		PC:     0,
		SP:     memlayout.UserStackInit,
		Mode:   User,
		Timer:  0,
		link:   link,
		out:    out,
		rng:    rand.New(rand.NewSource(seed)),
		period: period,
	}
}

// Run drives the fetch-decode-execute loop until opcode 50 (End) retires
// cleanly, or a fatal error aborts the simulation.
func (c *CPU) Run() error {
	for {
		halted, err := c.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step retires exactly one instruction: fetch, execute, timer check. It is
// the single-step primitive Run loops on; the debug monitor calls it
// directly, once per keypress, so it can render register and memory state
// between instructions without duplicating any dispatch logic.
func (c *CPU) Step() (halted bool, err error) {
	if err := c.fetch(); err != nil {
		return false, err
	}
	halted, err = c.execute()
	if err != nil {
		return false, err
	}
	if halted {
		return true, nil
	}
	c.Timer++
	if c.shouldInterrupt() {
		if err := c.enterTimerInterrupt(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// fetch reads the cell at PC into IR. This is itself a protected access:
// a fetch from the wrong region for the current mode is as fatal as any
// other.
func (c *CPU) fetch() error {
	v, err := c.read(c.PC)
	if err != nil {
		return err
	}
	c.IR = v
	tracelog.Tracef("pc=%d ir=%d mode=%s sp=%d ac=%d x=%d y=%d timer=%d", c.PC, c.IR, c.Mode, c.SP, c.AC, c.X, c.Y, c.Timer)
	return nil
}

// checkAccess enforces the user/kernel address partition for every memory
// touch: instruction fetches, operand fetches, indirect loads, stack
// pushes/pops, and kernel-side saves all funnel through here via read/write.
func (c *CPU) checkAccess(addr int32) error {
	var ok bool
	if c.Mode == User {
		ok = memlayout.InUserRegion(addr)
	} else {
		ok = memlayout.InSystemRegion(addr)
	}
	if !ok {
		return &ProtectionError{Addr: addr, Mode: c.Mode}
	}
	return nil
}

func (c *CPU) read(addr int32) (int32, error) {
	if err := c.checkAccess(addr); err != nil {
		return 0, err
	}
	return c.link.ReadCell(addr), nil
}

func (c *CPU) write(addr, value int32) error {
	if err := c.checkAccess(addr); err != nil {
		return err
	}
	c.link.WriteCell(addr, value)
	return nil
}

// fetchImmediate implements the PC discipline shared by every instruction
// that takes one operand cell: PC advances past the opcode, the operand is
// read, and PC advances past the operand. Any indirection the instruction
// performs afterwards (LoadInd, LoadIdxX, ...) does not change this
// arithmetic; only the final net PC position matters.
func (c *CPU) fetchImmediate() (int32, error) {
	c.PC++
	v, err := c.read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

// shouldInterrupt reports whether the timer fires now: a nonzero multiple
// of the configured period, evaluated only in user mode so interrupts never
// nest.
func (c *CPU) shouldInterrupt() bool {
	return c.Mode == User && c.period > 0 && c.Timer%c.period == 0
}

// enterTimerInterrupt transfers control to the timer handler at 1000 using
// the same save mechanism SysCall (opcode 29) uses for its own entry point;
// see enterPrivileged in instructions.go. SysReturn restores either.
func (c *CPU) enterTimerInterrupt() error {
	return c.enterPrivileged(memlayout.TimerEntry)
}
