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

import (
	"errors"
	"fmt"
)

// ErrProtection is the sentinel behind every ProtectionError, so callers
// can test the category with errors.Is without matching the formatted text.
var ErrProtection = errors.New("memory violation")

// ErrDecode is the sentinel behind every DecodeError.
var ErrDecode = errors.New("unknown opcode")

// ProtectionError reports a memory access that targets the wrong region for
// the CPU's current mode. It is always fatal.
type ProtectionError struct {
	Addr int32
	Mode Mode
}

func (e *ProtectionError) Error() string {
	return fmt.Sprintf("memory violation: address %d is not accessible in %s mode", e.Addr, e.Mode)
}

func (e *ProtectionError) Unwrap() error { return ErrProtection }

// DecodeError reports an IR value with no matching instruction.
type DecodeError struct {
	Value int32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d", e.Value)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }
