// Copyright 2025, evrirus

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/evrirus/mireaconfig3/cpu"
	"github.com/evrirus/mireaconfig3/internal"
	"github.com/evrirus/mireaconfig3/io"
)

const (
	MEMORY_SIZE = 2048 // Initial memory of the interpreter, in cells.
)

var _emulator_defines = map[string]string{
	"EMULATOR_MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
}

// Emulator state. CPU + program listing + ROM image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing, if the program came from source.

	Rom io.Rom // Binary image executed by the CPU.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(MEMORY_SIZE),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset loads the program into the CPU. An assembled listing takes
// precedence over the ROM image.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil && len(emu.Program.Lines) != 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(emu.Rom.Data)

	return
}

// LineNo returns the source line number of the instruction at the program
// counter, or 0 without a listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	line := emu.Program.Debug(emu.Cpu.Pc)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program completes.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}

// Snapshot captures the memory cells in [start, end). A negative end, or
// one past the end of memory, stops at the end of memory.
func (emu *Emulator) Snapshot(start, end int) (snap *io.Snapshot) {
	cells := emu.Cpu.Memory.Slice(start, end)

	snap = &io.Snapshot{
		Start:  max(0, min(start, emu.Cpu.Memory.Len())),
		Values: make([]int64, len(cells)),
	}
	for n, cell := range cells {
		snap.Values[n] = int64(cell)
	}

	return
}
