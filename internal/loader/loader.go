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

// Package loader reads a textual program image into a 2000-cell array. The
// format is a trivial line scanner: a '.' line repositions the load cursor,
// a line starting with a digit or '-' deposits a signed integer and
// advances the cursor, and blank or space-led lines are comments.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"
)

// ErrOutOfRange is wrapped into the error returned when a data or cursor
// line would deposit outside the store's index range.
var ErrOutOfRange = errors.New("loader: address out of range")

// Image is the fixed-size cell array a program image loads into.
type Image = [memlayout.Size]int32

// LoadFile opens path and loads its contents via Load.
func LoadFile(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load scans r line by line and deposits cells into a fresh Image.
func Load(r io.Reader) (Image, error) {
	var image Image
	cursor := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case line == "" || strings.HasPrefix(line, " "):
			// Blank or comment-indented line: skip without advancing.
			continue

		case line[0] == '.':
			k, err := strconv.Atoi(firstToken(line[1:]))
			if err != nil {
				return image, fmt.Errorf("loader: line %d: invalid cursor directive: %w", lineNo, err)
			}
			cursor = k

		case line[0] == '-' || (line[0] >= '0' && line[0] <= '9'):
			tok := firstToken(line)
			v, err := strconv.Atoi(tok)
			if err != nil {
				return image, fmt.Errorf("loader: line %d: invalid integer %q: %w", lineNo, tok, err)
			}
			if cursor < 0 || cursor >= memlayout.Size {
				return image, fmt.Errorf("loader: line %d: cursor %d: %w", lineNo, cursor, ErrOutOfRange)
			}
			image[cursor] = int32(v)
			cursor++

		default:
			// Anything else (e.g. a stray comment line with no leading
			// marker) is skipped rather than rejected; the format has no
			// comment marker of its own.
		}
	}
	if err := scanner.Err(); err != nil {
		return image, fmt.Errorf("loader: %w", err)
	}
	return image, nil
}

// firstToken returns s up to (not including) its first whitespace run,
// trimming the trailing-comment convention the format allows on data and
// cursor lines.
func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
