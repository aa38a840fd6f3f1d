package cpu

import (
	"math"
	"slices"
)

const (
	MEMORY_SIZE = 4096 // Default initial memory size, in cells.
)

// Cell is a single memory location.
type Cell int64

// Memory is a flat, zero initialized array of cells. Any access past the
// end grows it to cover the address.
type Memory struct {
	Cells []Cell
}

// NewMemory creates a memory of capacity zeroed cells.
func NewMemory(capacity int) (mem *Memory) {
	mem = &Memory{
		Cells: make([]Cell, capacity),
	}

	return
}

// grow extends the memory to hold addr, zero filling new cells.
func (mem *Memory) grow(addr uint32) {
	need := int(addr) + 1
	if need <= len(mem.Cells) {
		return
	}
	old := len(mem.Cells)
	mem.Cells = slices.Grow(mem.Cells, need-old)[:need]
	clear(mem.Cells[old:])
}

// Len returns the current number of cells.
func (mem *Memory) Len() int {
	return len(mem.Cells)
}

// Read returns the cell at addr.
func (mem *Memory) Read(addr uint32) Cell {
	mem.grow(addr)
	return mem.Cells[addr]
}

// Write sets the cell at addr.
func (mem *Memory) Write(addr uint32, value Cell) {
	mem.grow(addr)
	mem.Cells[addr] = value
}

// Slice returns the cells in [start, end), clamped to the current length.
// A negative end means the end of memory.
func (mem *Memory) Slice(start, end int) []Cell {
	if end < 0 || end > len(mem.Cells) {
		end = len(mem.Cells)
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	return mem.Cells[start:end]
}

// Reset zeroes all cells, and truncates to capacity cells.
func (mem *Memory) Reset(capacity int) {
	if capacity > cap(mem.Cells) {
		mem.Cells = make([]Cell, capacity)
		return
	}
	mem.Cells = mem.Cells[:capacity]
	clear(mem.Cells)
}

// Isqrt returns the floor of the square root of value.
func Isqrt(value Cell) (root Cell, err error) {
	if value < 0 {
		err = ErrDomain
		return
	}

	r := Cell(math.Sqrt(float64(value)))
	// Correct float rounding for large values.
	for r > 0 && r > value/r {
		r--
	}
	for r+1 <= value/(r+1) {
		r++
	}
	root = r

	return
}
