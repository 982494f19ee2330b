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

// Package tracelog is a minimal, swappable sink for CPU instruction tracing.
// It is disabled by default so the hot fetch-decode-execute loop pays
// nothing for it; callers opt in with SetEnabled(true).
package tracelog

import "fmt"

// Logger receives trace lines. Implement this to route tracing to a file,
// a ring buffer, or the debug monitor.
type Logger interface {
	Log(msg string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

var (
	logger  Logger = nopLogger{}
	enabled        = false
)

// SetLogger installs impl as the trace sink. A nil impl restores the
// default no-op logger.
func SetLogger(impl Logger) {
	if impl == nil {
		logger = nopLogger{}
		return
	}
	logger = impl
}

// SetEnabled turns tracing on or off.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled reports whether tracing is currently on.
func Enabled() bool {
	return enabled
}

// Tracef formats and logs a trace line if tracing is enabled; when it is
// disabled Tracef returns before formatting. Callers on a hot path can also
// guard with Enabled() to skip building the argument list.
func Tracef(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Log(fmt.Sprintf(format, args...))
}
