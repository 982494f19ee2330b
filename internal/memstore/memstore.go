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

// Package memstore implements the Memory context: the sole owner of the
// 2000-cell store, served as a request/reply loop over a bus.Link. It never
// inspects CPU state and never initiates a request of its own.
package memstore

import (
	"fmt"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"
)

// Store is the 2000-cell memory array. A zero Store is ready to use; cells
// start at zero until Load populates them.
type Store struct {
	cells [memlayout.Size]int32
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Load replaces the store's contents with image, as deposited by the
// program loader.
func (s *Store) Load(image [memlayout.Size]int32) {
	s.cells = image
}

// Snapshot returns a copy of the current cell contents, for inspection by
// tests and the debug monitor. The Memory context itself never exposes a
// live reference to its array. Snapshot is not synchronized with Run: a
// WRITE that Run has accepted may not yet be applied, so the copy is only
// certain to hold every write once Run has returned.
func (s *Store) Snapshot() [memlayout.Size]int32 {
	return s.cells
}

// Run serves commands from link until it observes EXIT. It is meant to run
// in its own goroutine, concurrently with the CPU context driving the other
// end of link; the two never share state beyond the Link itself.
//
// Addresses arriving from the CPU are trusted here: protection is enforced
// on the CPU side before a command is ever sent. An out-of-range address
// reaching this loop is a programming error in the core, not adversarial
// input, so Run aborts with a panic rather than silently wrapping it.
func (s *Store) Run(link *bus.Link) {
	for req := range link.Requests {
		switch req.Op {
		case bus.OpRead:
			link.Replies <- s.readCell(req.Addr)
		case bus.OpWrite:
			s.writeCell(req.Addr, req.Value)
		case bus.OpExit:
			return
		default:
			panic(fmt.Sprintf("memstore: unrecognized command %s", req.Op))
		}
	}
}

func (s *Store) readCell(addr int32) int32 {
	if addr < 0 || addr >= memlayout.Size {
		panic(fmt.Sprintf("memstore: read address %d out of range", addr))
	}
	return s.cells[addr]
}

func (s *Store) writeCell(addr, value int32) {
	if addr < 0 || addr >= memlayout.Size {
		panic(fmt.Sprintf("memstore: write address %d out of range", addr))
	}
	s.cells[addr] = value
}
