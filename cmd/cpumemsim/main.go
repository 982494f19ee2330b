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

// Command cpumemsim is the bootstrap: it parses the program image path and
// optional interrupt period, loads the image, wires the CPU and Memory
// contexts to opposite ends of a bus.Link, and runs them to completion.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charlesdungy/cpu-memory-simulation/internal/bus"
	"github.com/charlesdungy/cpu-memory-simulation/internal/cpuvm"
	"github.com/charlesdungy/cpu-memory-simulation/internal/loader"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memstore"
	"github.com/charlesdungy/cpu-memory-simulation/internal/teletype"
	"github.com/charlesdungy/cpu-memory-simulation/internal/tracelog"
)

// defaultPeriod is the timer interrupt interval when the caller does not
// supply one: every 1000 retired instructions.
const defaultPeriod = 1000

// Config groups the bootstrap's parsed inputs.
type Config struct {
	ImagePath string
	Period    uint64
	Seed      int64
	Trace     bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cpumemsim: ")

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.Trace {
		tracelog.SetLogger(stderrLogger{})
		tracelog.SetEnabled(true)
	}

	image, err := loader.LoadFile(cfg.ImagePath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store := memstore.New()
	store.Load(image)

	link := bus.NewLink()
	out := teletype.New(os.Stdout)
	cpu := cpuvm.New(link, out, cfg.Period, cfg.Seed)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Run(link)
	}()

	runErr := cpu.Run()
	if runErr != nil {
		// The CPU aborted before opcode 50 could emit its own EXIT, so the
		// memory goroutine is still blocked reading from the link; tell it
		// to stop directly or wg.Wait below would never return.
		link.Exit()
	}
	wg.Wait()

	if runErr != nil {
		log.Fatalf("%v", runErr)
	}
}

// parseArgs validates the positional PROGRAM_IMAGE_PATH [INTERRUPT_PERIOD]
// arguments: one or two arguments; anything else, or a non-integer period,
// fails before any channel is created.
func parseArgs(args []string) (Config, error) {
	cfg := Config{Period: defaultPeriod, Seed: time.Now().UnixNano()}

	if seedStr := os.Getenv("CPUMEMSIM_SEED"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("args: CPUMEMSIM_SEED must be an integer: %w", err)
		}
		cfg.Seed = seed
	}
	if os.Getenv("CPUMEMSIM_TRACE") != "" {
		cfg.Trace = true
	}

	switch len(args) {
	case 1:
		cfg.ImagePath = args[0]
	case 2:
		cfg.ImagePath = args[0]
		period, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("args: interrupt period must be a non-negative integer: %w", err)
		}
		cfg.Period = period
	default:
		return Config{}, errors.New("args: usage: cpumemsim PROGRAM_IMAGE_PATH [INTERRUPT_PERIOD]")
	}
	return cfg, nil
}

// stderrLogger routes trace output to standard error so it never mixes with
// the simulated program's own opcode-9 output on standard out.
type stderrLogger struct{}

func (stderrLogger) Log(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
