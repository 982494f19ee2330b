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

package teletype_test

import (
	"bytes"
	"testing"

	"github.com/charlesdungy/cpu-memory-simulation/internal/teletype"
)

func TestWriter_Put(t *testing.T) {
	cases := []struct {
		name string
		port int32
		ac   int32
		want string
	}{
		{"decimal", teletype.PortDecimal, 42, "42"},
		{"decimal_negative", teletype.PortDecimal, -7, "-7"},
		{"character", teletype.PortCharacter, 65, "A"},
		{"unknown_port_is_noop", 3, 42, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := teletype.New(&buf)
			if err := w.Put(tc.port, tc.ac); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Errorf("Put(%d, %d) wrote %q, want %q", tc.port, tc.ac, got, tc.want)
			}
		})
	}
}

func TestNew_NilDefaultsToStdout(t *testing.T) {
	// New(nil) must not panic; it falls back to os.Stdout.
	w := teletype.New(nil)
	if w == nil {
		t.Fatal("New(nil) = nil")
	}
}
