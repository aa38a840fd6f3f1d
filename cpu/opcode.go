package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the leading byte of an instruction.
type Opcode byte

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_STORE      = Opcode(17) // STORE
	OP_SQRT       = Opcode(19) // SQRT
	OP_LOAD_MEM   = Opcode(24) // LOAD_MEM
	OP_LOAD_CONST = Opcode(28) // LOAD_CONST
)

// Field names an operand field of an instruction.
type Field int

//go:generate go tool stringer -linecomment -type=Field
const (
	FIELD_B = Field(0) // B
	FIELD_C = Field(1) // C
	FIELD_D = Field(2) // D
)

// Layout is the encoding of an opcode: the width in bytes of each operand
// field, zero for fields the opcode does not carry.
type Layout struct {
	Widths [3]int
}

// Width returns the total encoded size, opcode byte included.
func (layout Layout) Width() (width int) {
	width = 1
	for _, w := range layout.Widths {
		width += w
	}
	return
}

// Has returns true if the layout carries the field.
func (layout Layout) Has(field Field) bool {
	return layout.Widths[field] != 0
}

// Max returns the largest value encodable in the field.
func (layout Layout) Max(field Field) uint32 {
	return uint32(1)<<(8*layout.Widths[field]) - 1
}

var layouts = map[Opcode]Layout{
	OP_LOAD_CONST: {Widths: [3]int{2, 3, 0}},
	OP_LOAD_MEM:   {Widths: [3]int{2, 3, 3}},
	OP_STORE:      {Widths: [3]int{2, 2, 0}},
	OP_SQRT:       {Widths: [3]int{2, 3, 3}}, // C is reserved.
}

// LayoutOf returns the encoding layout of an opcode.
func LayoutOf(op Opcode) (layout Layout, ok bool) {
	layout, ok = layouts[op]
	return
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := layouts[op]
	return ok
}

// Instruction is a decoded instruction. Fields absent from the opcode's
// layout are zero.
type Instruction struct {
	Op Opcode
	B  uint32
	C  uint32
	D  uint32
}

// Operand returns the value of a field.
func (ins Instruction) Operand(field Field) uint32 {
	switch field {
	case FIELD_B:
		return ins.B
	case FIELD_C:
		return ins.C
	case FIELD_D:
		return ins.D
	}
	panic("unknown field")
}

// Width returns the encoded size of the instruction, or 0 if the opcode
// is unknown.
func (ins Instruction) Width() int {
	layout, ok := LayoutOf(ins.Op)
	if !ok {
		return 0
	}
	return layout.Width()
}

// Validate checks that the opcode exists and that every operand fits its
// field. Fields absent from the layout must be zero.
func (ins Instruction) Validate() (err error) {
	layout, ok := LayoutOf(ins.Op)
	if !ok {
		err = &ErrOpcode{Code: int(ins.Op), Offset: -1}
		return
	}

	for _, field := range []Field{FIELD_B, FIELD_C, FIELD_D} {
		value := ins.Operand(field)
		if value > layout.Max(field) {
			err = &ErrOperand{Field: field, Value: int64(value), Max: layout.Max(field)}
			return
		}
	}

	return
}

// String renders the instruction as it appears in the execution trace.
// Fields absent from the layout are shown as null.
func (ins Instruction) String() string {
	layout, _ := LayoutOf(ins.Op)

	var sb strings.Builder
	fmt.Fprintf(&sb, "{A:%d", int(ins.Op))
	for _, field := range []Field{FIELD_B, FIELD_C, FIELD_D} {
		if layout.Has(field) {
			fmt.Fprintf(&sb, ", %v:%d", field, ins.Operand(field))
		} else {
			fmt.Fprintf(&sb, ", %v:null", field)
		}
	}
	sb.WriteString("}")

	return sb.String()
}
