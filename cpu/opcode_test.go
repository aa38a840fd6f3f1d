package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    Opcode
		name  string
		width int
		has   [3]bool
	}){
		{OP_LOAD_CONST, "LOAD_CONST", 6, [3]bool{true, true, false}},
		{OP_LOAD_MEM, "LOAD_MEM", 9, [3]bool{true, true, true}},
		{OP_STORE, "STORE", 5, [3]bool{true, true, false}},
		{OP_SQRT, "SQRT", 9, [3]bool{true, true, true}},
	}

	for _, entry := range table {
		layout, ok := LayoutOf(entry.op)
		assert.True(ok, entry.name)
		assert.True(entry.op.Valid(), entry.name)
		assert.Equal(entry.name, entry.op.String())
		assert.Equal(entry.width, layout.Width(), entry.name)
		for n, field := range []Field{FIELD_B, FIELD_C, FIELD_D} {
			assert.Equal(entry.has[n], layout.Has(field), "%v %v", entry.name, field)
		}
	}

	_, ok := LayoutOf(Opcode(0xff))
	assert.False(ok)
	assert.False(Opcode(0).Valid())
	assert.Equal("Opcode(255)", Opcode(0xff).String())
}

func TestLayout_Max(t *testing.T) {
	assert := assert.New(t)

	layout, _ := LayoutOf(OP_LOAD_MEM)
	assert.Equal(uint32(0xffff), layout.Max(FIELD_B))
	assert.Equal(uint32(0xffffff), layout.Max(FIELD_C))
	assert.Equal(uint32(0xffffff), layout.Max(FIELD_D))

	layout, _ = LayoutOf(OP_STORE)
	assert.Equal(uint32(0xffff), layout.Max(FIELD_C))
	assert.Equal(uint32(0), layout.Max(FIELD_D))
}

func TestInstruction_Validate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Instruction{Op: OP_LOAD_CONST, B: 0xffff, C: 0xffffff}.Validate())

	// Absent fields must be zero.
	err := Instruction{Op: OP_STORE, B: 1, C: 2, D: 7}.Validate()
	assert.True(errors.Is(err, ErrInvalidOperand))
	var eo *ErrOperand
	if assert.True(errors.As(err, &eo)) {
		assert.Equal(FIELD_D, eo.Field)
		assert.Equal(uint32(0), eo.Max)
	}

	err = Instruction{Op: OP_STORE, B: 1, C: 0x10000}.Validate()
	assert.True(errors.Is(err, ErrInvalidOperand))
	if assert.True(errors.As(err, &eo)) {
		assert.Equal(FIELD_C, eo.Field)
	}

	err = Instruction{Op: OP_LOAD_CONST, B: 0x10000}.Validate()
	assert.True(errors.Is(err, ErrInvalidOperand))

	err = Instruction{Op: Opcode(1)}.Validate()
	assert.True(errors.Is(err, ErrUnknownOpcode))
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("{A:28, B:5, C:42, D:null}", Instruction{Op: OP_LOAD_CONST, B: 5, C: 42}.String())
	assert.Equal("{A:17, B:5, C:6, D:null}", Instruction{Op: OP_STORE, B: 5, C: 6}.String())
	assert.Equal("{A:19, B:6, C:0, D:7}", Instruction{Op: OP_SQRT, B: 6, D: 7}.String())
	assert.Equal("{A:24, B:0, C:3, D:1}", Instruction{Op: OP_LOAD_MEM, C: 3, D: 1}.String())
}
