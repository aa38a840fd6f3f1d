package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Grow(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(0)
	assert.Equal(0, mem.Len())

	mem.Write(5, 42)
	assert.Equal(6, mem.Len())
	mem.Write(100, 7)
	assert.Equal(101, mem.Len())

	assert.Equal(Cell(42), mem.Read(5))
	assert.Equal(Cell(7), mem.Read(100))
	assert.Equal(Cell(0), mem.Read(50))
	assert.Equal(101, mem.Len())

	// Reads grow too.
	assert.Equal(Cell(0), mem.Read(200))
	assert.Equal(201, mem.Len())
	assert.Equal(Cell(42), mem.Read(5))
}

func TestMemory_Capacity(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(16)
	assert.Equal(16, mem.Len())

	mem.Write(3, 9)
	assert.Equal(16, mem.Len())
	assert.Equal(Cell(9), mem.Read(3))
}

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	mem.Write(2, 1)
	mem.Write(10, 2)

	mem.Reset(4)
	assert.Equal(4, mem.Len())
	assert.Equal(Cell(0), mem.Read(2))

	// Cells regrown past the reset length are zero.
	assert.Equal(Cell(0), mem.Read(10))
}

func TestMemory_Slice(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	mem.Write(1, 11)
	mem.Write(2, 22)

	assert.Equal([]Cell{11, 22}, mem.Slice(1, 3))
	assert.Equal([]Cell{0, 11, 22, 0}, mem.Slice(0, -1))
	assert.Equal([]Cell{22, 0}, mem.Slice(2, 100))
	assert.Equal([]Cell{}, mem.Slice(10, 20))
	assert.Equal(4, mem.Len())
}

func TestIsqrt(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value Cell
		root  Cell
	}){
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{42, 6},
		{99, 9},
		{100, 10},
		{0xffffff, 4095},
		{1 << 62, 1 << 31},
		{(1 << 62) - 1, (1 << 31) - 1},
	}

	for _, entry := range table {
		root, err := Isqrt(entry.value)
		assert.NoError(err)
		assert.Equal(entry.root, root, "isqrt(%d)", entry.value)
	}

	_, err := Isqrt(-1)
	assert.True(errors.Is(err, ErrDomain))
}
