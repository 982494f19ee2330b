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

package bus_test

import (
	"testing"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
)

// echoServer is a minimal stand-in for the memory context: it replies to
// READ with the address doubled, accepts WRITE silently, and stops on EXIT.
// It exists so bus can be tested without depending on memstore.
func echoServer(link *bus.Link) {
	for req := range link.Requests {
		switch req.Op {
		case bus.OpRead:
			link.Replies <- req.Addr * 2
		case bus.OpWrite:
			// no reply, per protocol
		case bus.OpExit:
			return
		}
	}
}

func TestLink_ReadCell(t *testing.T) {
	link := bus.NewLink()
	go echoServer(link)

	if got := link.ReadCell(21); got != 42 {
		t.Errorf("ReadCell(21) = %d, want 42", got)
	}
	link.Exit()
}

func TestLink_WriteThenReadOrdering(t *testing.T) {
	// WriteCell must return before the next ReadCell is issued, and the
	// server must see the write before the read it precedes.
	link := bus.NewLink()
	store := map[int32]int32{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for req := range link.Requests {
			switch req.Op {
			case bus.OpWrite:
				store[req.Addr] = req.Value
			case bus.OpRead:
				link.Replies <- store[req.Addr]
			case bus.OpExit:
				return
			}
		}
	}()

	link.WriteCell(7, 99)
	if got := link.ReadCell(7); got != 99 {
		t.Errorf("ReadCell(7) after WriteCell(7, 99) = %d, want 99", got)
	}
	link.Exit()
	<-done
}

func TestOp_String(t *testing.T) {
	cases := map[bus.Op]string{
		bus.OpRead:  "READ",
		bus.OpWrite: "WRITE",
		bus.OpExit:  "EXIT",
		bus.Op(7):   "Op(7)",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", int32(op), got, want)
		}
	}
}

func TestOpcodeValues(t *testing.T) {
	// The numeric values are load-bearing: they double as the wire opcode
	// and, for EXIT, the sentinel value the CPU's End instruction emits.
	if bus.OpRead != 'r' {
		t.Errorf("OpRead = %d, want %d", bus.OpRead, 'r')
	}
	if bus.OpWrite != 'w' {
		t.Errorf("OpWrite = %d, want %d", bus.OpWrite, 'w')
	}
	if bus.OpExit != 99 {
		t.Errorf("OpExit = %d, want 99", bus.OpExit)
	}
}
