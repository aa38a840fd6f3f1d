// Package cpu implements the UVM processor and its assembler.
//
// The UVM has four instructions, no registers and no control flow. Each
// instruction is a one byte opcode followed by up to three little endian
// operand fields (B, C, D) whose widths are fixed by the opcode. The
// processor walks the program from offset 0, executing each instruction
// against a flat memory of integer cells that grows on demand, and halts
// at the end of the program.
//
// The assembler turns a comma separated listing of opcodes and operands
// into a Program, supporting equates and compile-time expression
// evaluation.
package cpu
