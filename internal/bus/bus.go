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

// Package bus implements the channel transport connecting the CPU context to
// the Memory context. The two contexts share nothing but this Link: CPU owns
// the register file, Memory owns the cell store, and the Link's two
// unidirectional channels are the only objects either side touches that the
// other can also reach.
package bus

import "fmt"

// Op identifies a command on the wire. The numeric values are the ASCII code
// points of 'r' and 'w', plus the literal 99 for EXIT, so the opcode space
// cannot collide with plausible address or value payloads.
type Op int32

const (
	OpRead  Op = 'r'
	OpWrite Op = 'w'
	OpExit  Op = 99
)

func (op Op) String() string {
	switch op {
	case OpRead:
		return "READ"
	case OpWrite:
		return "WRITE"
	case OpExit:
		return "EXIT"
	default:
		return fmt.Sprintf("Op(%d)", int32(op))
	}
}

// Request is one command sent from the CPU context to the Memory context.
// Addr is meaningful for READ and WRITE; Value is meaningful for WRITE only.
type Request struct {
	Op    Op
	Addr  int32
	Value int32
}

// Link is the pair of unidirectional channels connecting the two contexts:
// Requests carries CPU -> Memory traffic,
// Replies carries the READ response back. Both channels are unbuffered, so
// a send blocks until the other side is ready -- the Go-native equivalent
// of a blocking pipe write.
type Link struct {
	Requests chan Request
	Replies  chan int32
}

// NewLink creates a fresh, unconnected Link. Both ends must be read/written
// by exactly one goroutine each for the lifetime of the Link.
func NewLink() *Link {
	return &Link{
		Requests: make(chan Request),
		Replies:  make(chan int32),
	}
}

// ReadCell sends a READ command for addr and blocks for the reply. The CPU
// never has more than one outstanding READ: this call does not return until
// the paired reply has arrived.
func (l *Link) ReadCell(addr int32) int32 {
	l.Requests <- Request{Op: OpRead, Addr: addr}
	return <-l.Replies
}

// WriteCell sends a WRITE command. WRITE has no reply; the call returns as
// soon as the Memory context has accepted the request.
func (l *Link) WriteCell(addr, value int32) {
	l.Requests <- Request{Op: OpWrite, Addr: addr, Value: value}
}

// Exit sends the EXIT command exactly once, as the CPU's final act. After
// Exit returns, the caller must not use the Link again.
func (l *Link) Exit() {
	l.Requests <- Request{Op: OpExit}
}
