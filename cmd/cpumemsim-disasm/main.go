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

// Command cpumemsim-disasm prints a static disassembly of a program image
// without executing it: address, mnemonic, and immediate operand (if any)
// for each cell, walked linearly from a start address until an End opcode,
// an unknown opcode, or the instruction count cap is reached.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/charlesdungy/cpu-memory-simulation/internal/cpuvm"
	"github.com/charlesdungy/cpu-memory-simulation/internal/loader"
	"github.com/charlesdungy/cpu-memory-simulation/internal/memlayout"
)

func main() {
	app := &cli.App{
		Name:  "cpumemsim-disasm",
		Usage: "disassemble a cpumemsim program image without executing it",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "address to begin disassembling from",
				Value:   0,
			},
			&cli.IntFlag{
				Name:    "max",
				Aliases: []string{"m"},
				Usage:   "maximum number of instructions to print",
				Value:   500,
			},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().Get(0)
			if path == "" {
				cli.ShowAppHelp(c)
				return cli.Exit("image path required", 1)
			}
			image, err := loader.LoadFile(path)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			disassemble(os.Stdout, image, int32(c.Int("start")), c.Int("max"))
			return nil
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble walks image linearly starting at start, printing one line per
// instruction until it emits End, hits an opcode with no mnemonic, runs off
// the end of the store, or prints max lines.
func disassemble(w io.Writer, image loader.Image, start int32, max int) {
	addr := start
	for i := 0; i < max; i++ {
		if addr < 0 || addr >= memlayout.Size {
			return
		}
		op := cpuvm.Opcode(image[addr])
		if !op.Defined() {
			fmt.Fprintf(w, "%04d  .data          %d\n", addr, image[addr])
			return
		}
		if op.HasImmediate() {
			operandAddr := addr + 1
			var operand int32
			if operandAddr < memlayout.Size {
				operand = image[operandAddr]
			}
			fmt.Fprintf(w, "%04d  %-14s %d\n", addr, op, operand)
			addr += 2
		} else {
			fmt.Fprintf(w, "%04d  %-14s\n", addr, op)
			addr++
		}
		if op == cpuvm.OpEnd {
			return
		}
	}
}
