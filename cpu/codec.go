package cpu

// Encode returns the binary encoding of an instruction.
func Encode(ins Instruction) (data []byte, err error) {
	return AppendEncode(nil, ins)
}

// AppendEncode appends the binary encoding of an instruction to dst.
// The opcode byte is followed by each field the layout carries, in B, C, D
// order, as unsigned little endian integers of the field's width.
func AppendEncode(dst []byte, ins Instruction) (data []byte, err error) {
	data = dst

	err = ins.Validate()
	if err != nil {
		return
	}

	layout, _ := LayoutOf(ins.Op)

	data = append(data, byte(ins.Op))
	for field, width := range layout.Widths {
		value := ins.Operand(Field(field))
		for n := range width {
			data = append(data, byte(value>>(8*n)))
		}
	}

	return
}

// Decode decodes the instruction at offset in program. At the end of the
// program it returns a nil instruction and no error. On success next is the
// offset of the following instruction.
func Decode(program []byte, offset int) (ins *Instruction, next int, err error) {
	next = offset

	if offset < 0 || offset > len(program) {
		err = &ErrTruncated{Offset: offset, Need: 1, Have: 0}
		return
	}

	if offset == len(program) {
		return
	}

	op := Opcode(program[offset])
	layout, ok := LayoutOf(op)
	if !ok {
		err = &ErrOpcode{Code: int(op), Offset: offset}
		return
	}

	width := layout.Width()
	if len(program)-offset < width {
		err = &ErrTruncated{Offset: offset, Need: width, Have: len(program) - offset}
		return
	}

	var fields [3]uint32
	pos := offset + 1
	for field, w := range layout.Widths {
		var value uint32
		for n := range w {
			value |= uint32(program[pos+n]) << (8 * n)
		}
		fields[field] = value
		pos += w
	}

	ins = &Instruction{
		Op: op,
		B:  fields[FIELD_B],
		C:  fields[FIELD_C],
		D:  fields[FIELD_D],
	}
	next = offset + width

	return
}
