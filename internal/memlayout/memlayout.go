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

// Package memlayout holds the fixed address-space constants shared by the
// CPU, the memory store and the program loader, so the 0..999 / 1000..1999
// split and the fixed kernel entry points are defined exactly once.
package memlayout

const (
	// Size is the total number of cells in the store.
	Size = 2000

	// UserMin and UserMax bound the region addressable in user mode.
	UserMin = 0
	UserMax = 999

	// SystemMin and SystemMax bound the region addressable in kernel mode.
	SystemMin = 1000
	SystemMax = 1999

	// UserStackInit is the CPU's initial SP: one past the top of the user
	// region, so the first push lands at 999 (full-descending convention).
	UserStackInit = 1000

	// TimerSaveSlotPC and TimerSaveSlotSP are where a timer interrupt or a
	// SysCall save the interrupted PC and SP, at the top of the system
	// region. SysReturn always reads them back from this same layout.
	TimerSaveSlotPC = SystemMax     // 1999
	TimerSaveSlotSP = SystemMax - 1 // 1998

	// TimerEntry and SyscallEntry are the fixed PC values a timer
	// interrupt and a SysCall transfer control to.
	TimerEntry   = 1000
	SyscallEntry = 1500
)

// InUserRegion reports whether addr lies in the user-addressable region.
func InUserRegion(addr int32) bool {
	return addr >= UserMin && addr <= UserMax
}

// InSystemRegion reports whether addr lies in the system-addressable region.
func InSystemRegion(addr int32) bool {
	return addr >= SystemMin && addr <= SystemMax
}
