package cpu

import (
	"fmt"
	"iter"
	"log"
)

// Line is an assembled row of the listing.
type Line struct {
	LineNo int
	Offset int
	Words  []string
	Instruction
}

// String returns the intermediate representation of the line.
func (line Line) String() string {
	return fmt.Sprintf("A=%d B=%d C=%d D=%d size=%d",
		int(line.Op), line.B, line.C, line.D, line.Width())
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

// Debug returns the line covering a program offset, or nil.
func (prog *Program) Debug(offset int) (line *Line) {
	for n, ln := range prog.Lines {
		if offset >= ln.Offset && offset < ln.Offset+ln.Width() {
			line = &prog.Lines[n]
			break
		}
	}

	return
}

// Binary returns the encoded program.
func (prog *Program) Binary() (bin []byte) {
	for _, ins := range prog.Codes() {
		var err error
		bin, err = AppendEncode(bin, ins)
		if err != nil {
			// Lines are validated by the assembler.
			log.Panicf("program: %v", err)
		}
	}

	return
}

// Codes iterates over the instructions and their offsets.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(offset int, ins Instruction) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Offset, line.Instruction) {
				return
			}
		}
	}
}
