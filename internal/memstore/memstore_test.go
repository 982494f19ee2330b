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

package memstore_test

import (
	"testing"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memstore"
)

func TestStore_ReadWriteExit(t *testing.T) {
	store := memstore.New()

	var img [memlayout.Size]int32
	img[5] = 77
	store.Load(img)

	link := bus.NewLink()
	done := make(chan struct{})
	go func() {
		store.Run(link)
		close(done)
	}()

	if got := link.ReadCell(5); got != 77 {
		t.Errorf("ReadCell(5) = %d, want 77", got)
	}

	link.WriteCell(5, 123)
	if got := link.ReadCell(5); got != 123 {
		t.Errorf("ReadCell(5) after write = %d, want 123", got)
	}

	link.Exit()
	<-done // Run must return once EXIT has been observed.

	if got := store.Snapshot()[5]; got != 123 {
		t.Errorf("Snapshot()[5] = %d, want 123", got)
	}
}

func TestStore_LoadReplacesContents(t *testing.T) {
	store := memstore.New()
	var first [memlayout.Size]int32
	first[0] = 1
	store.Load(first)

	var second [memlayout.Size]int32
	second[0] = 2
	store.Load(second)

	if got := store.Snapshot()[0]; got != 2 {
		t.Errorf("Snapshot()[0] = %d, want 2 (second Load should replace, not merge)", got)
	}
}
