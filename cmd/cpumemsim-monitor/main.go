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

// Command cpumemsim-monitor is a termui dashboard that single-steps a
// cpumemsim program image, one retired instruction per keypress, and renders
// the register file, a recent-instruction trace, and decimal dumps of the
// first 100 cells of the user and system regions. It drives the same internal/cpuvm, internal/bus and
// internal/memstore machinery the production cpumemsim binary uses; it never
// duplicates CPU logic, only calls CPU.Step and renders state afterward.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
	"github.com/charlesdungy/cpu-memory-simulation/internal/cpuvm"
	"github.com/charlesdungy/cpu-memory-simulation/internal/loader"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memstore"
	"github.com/charlesdungy/cpu-memory-simulation/internal/teletype"
	"github.com/charlesdungy/cpu-memory-simulation/internal/tracelog"
)

const historyDepth = 16

// session bundles the running simulation and the widgets that render it.
type session struct {
	cpu   *cpuvm.CPU
	store *memstore.Store
	link  *bus.Link

	halted  bool
	lastErr error
	history []string

	regs    *widgets.Paragraph
	trace   *widgets.Paragraph
	ramUser *widgets.Paragraph
	ramSys  *widgets.Paragraph
	tips    *widgets.Paragraph
}

// traceLogger appends formatted instruction-trace lines into the session's
// rolling history instead of writing them to a stream, so the monitor can
// render the most recent N retired instructions as they happen.
type traceLogger struct{ s *session }

func (t traceLogger) Log(msg string) {
	t.s.history = append(t.s.history, msg)
	if len(t.s.history) > historyDepth {
		t.s.history = t.s.history[len(t.s.history)-historyDepth:]
	}
}

func newSession(path string, period uint64, seed int64) (*session, error) {
	image, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	store := memstore.New()
	store.Load(image)

	link := bus.NewLink()
	cpu := cpuvm.New(link, teletype.New(os.Stdout), period, seed)

	s := &session{cpu: cpu, store: store, link: link}
	tracelog.SetLogger(traceLogger{s})
	tracelog.SetEnabled(true)
	return s, nil
}

// step retires exactly one instruction and records whether the simulation
// halted or aborted, for the next draw() call to render.
func (s *session) step() {
	if s.halted || s.lastErr != nil {
		return
	}
	halted, err := s.cpu.Step()
	s.halted = halted
	s.lastErr = err
}

func (s *session) renderRegisters(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "MODE: %s\n", s.cpu.Mode)
	fmt.Fprintf(sb, "PC: %d  SP: %d\n", s.cpu.PC, s.cpu.SP)
	fmt.Fprintf(sb, "IR: %d (%s)\n", s.cpu.IR, cpuvm.Opcode(s.cpu.IR))
	fmt.Fprintf(sb, "AC: %d\n", s.cpu.AC)
	fmt.Fprintf(sb, "X:  %d\n", s.cpu.X)
	fmt.Fprintf(sb, "Y:  %d\n", s.cpu.Y)
	fmt.Fprintf(sb, "TIMER: %d\n", s.cpu.Timer)
	if s.halted {
		sb.WriteString("[HALTED](fg:green)\n")
	}
	if s.lastErr != nil {
		fmt.Fprintf(sb, "[ERROR: %v](fg:red)\n", s.lastErr)
	}
	p.Text = sb.String()
}

func (s *session) renderTrace(p *widgets.Paragraph) {
	p.Text = strings.Join(s.history, "\n")
}

func (s *session) renderRam(p *widgets.Paragraph, base int32, rows, cols int) {
	snap := s.store.Snapshot()
	sb := &strings.Builder{}
	addr := base
	for r := 0; r < rows; r++ {
		fmt.Fprintf(sb, "%04d:", addr)
		for c := 0; c < cols; c++ {
			fmt.Fprintf(sb, " %6d", snap[addr])
			addr++
		}
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func (s *session) draw() {
	s.renderRegisters(s.regs)
	s.renderTrace(s.trace)
	s.renderRam(s.ramUser, 0, 10, 10)
	s.renderRam(s.ramSys, 1000, 10, 10)
	s.tips.Text = "SPACE = Step    Q = Quit"
	ui.Render(s.regs, s.trace, s.ramUser, s.ramSys, s.tips)
}

func (s *session) initLayout() {
	s.regs = widgets.NewParagraph()
	s.regs.Title = "Registers"
	s.regs.SetRect(0, 0, 40, 10)

	s.trace = widgets.NewParagraph()
	s.trace.Title = "Recent instructions"
	s.trace.SetRect(40, 0, 100, 20)

	s.ramUser = widgets.NewParagraph()
	s.ramUser.Title = "User region [0..999]"
	s.ramUser.SetRect(0, 10, 40, 22)

	s.ramSys = widgets.NewParagraph()
	s.ramSys.Title = "System region [1000..1999]"
	s.ramSys.SetRect(0, 22, 40, 34)

	s.tips = widgets.NewParagraph()
	s.tips.Title = "Keys"
	s.tips.SetRect(0, 34, 100, 37)
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatal("usage: cpumemsim-monitor PROGRAM_IMAGE_PATH [INTERRUPT_PERIOD]")
	}
	period := uint64(1000)
	if len(os.Args) == 3 {
		p, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("cpumemsim-monitor: interrupt period must be a non-negative integer: %v", err)
		}
		period = p
	}
	s, err := newSession(os.Args[1], period, 1)
	if err != nil {
		log.Fatalf("cpumemsim-monitor: %v", err)
	}

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	s.initLayout()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.store.Run(s.link)
	}()

	s.draw()
	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			if !s.halted {
				// The CPU never emitted EXIT itself (still mid-run, or it
				// aborted on an error); tell the memory goroutine to stop.
				s.link.Exit()
			}
			wg.Wait()
			return
		case "<Space>":
			s.step()
			if s.halted {
				wg.Wait()
			}
		}
		s.draw()
	}
}
