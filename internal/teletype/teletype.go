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

// Package teletype implements the CPU's opcode-9 output ports on top of an
// io.Writer, so the core never calls fmt.Print* directly and tests can
// capture output in a bytes.Buffer instead of the process's real stdout.
package teletype

import (
	"fmt"
	"io"
	"os"
)

// Port identifies one of the two output ports opcode 9 can address.
const (
	PortDecimal   = 1
	PortCharacter = 2
)

// Writer routes AC values to an io.Writer (the host's standard output by
// default).
type Writer struct {
	out io.Writer
}

// New returns a Writer over out. A nil out defaults to os.Stdout.
func New(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out}
}

// Put writes ac to the given port. Port 1 prints ac as a decimal integer
// with no separator or newline; port 2 prints the low-order byte of ac as a
// character. Any other port is a no-op.
func (w *Writer) Put(port, ac int32) error {
	switch port {
	case PortDecimal:
		_, err := fmt.Fprintf(w.out, "%d", ac)
		return err
	case PortCharacter:
		_, err := fmt.Fprintf(w.out, "%c", byte(ac))
		return err
	default:
		return nil
	}
}
