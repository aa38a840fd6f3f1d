package cpu

import (
	"errors"

	"github.com/evrirus/mireaconfig3/translate"
)

var f = translate.From

var (
	// Error kinds. Every typed error below unwraps to one of these.
	ErrInvalidOperand       = errors.New(f("invalid operand"))
	ErrUnknownOpcode        = errors.New(f("unknown opcode"))
	ErrTruncatedInstruction = errors.New(f("truncated instruction"))
	ErrDomain               = errors.New(f("domain error"))

	// Cpu errors
	ErrHalted    = errors.New(f("halted"))
	ErrTickLimit = errors.New(f("tick limit exceeded"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
)

// ErrOpcode is an opcode outside of the instruction set. Offset is -1 when
// the opcode did not come from a program buffer.
type ErrOpcode struct {
	Code   int
	Offset int
}

func (err *ErrOpcode) Error() string {
	if err.Offset < 0 {
		return f("unknown opcode %d", err.Code)
	}
	return f("unknown opcode %d at offset %d", err.Code, err.Offset)
}

func (err *ErrOpcode) Unwrap() error {
	return ErrUnknownOpcode
}

// ErrTruncated is an instruction running past the end of the program.
type ErrTruncated struct {
	Offset int
	Need   int
	Have   int
}

func (err *ErrTruncated) Error() string {
	return f("instruction at offset %d needs %d bytes, %d remain", err.Offset, err.Need, err.Have)
}

func (err *ErrTruncated) Unwrap() error {
	return ErrTruncatedInstruction
}

// ErrOperand is an operand value that does not fit its field.
type ErrOperand struct {
	Field Field
	Value int64
	Max   uint32
}

func (err *ErrOperand) Error() string {
	return f("operand %v value %d out of range 0..%d", err.Field.String(), err.Value, err.Max)
}

func (err *ErrOperand) Unwrap() error {
	return ErrInvalidOperand
}

// ErrSqrt is a square root of a negative cell.
type ErrSqrt struct {
	Address uint32
	Value   Cell
}

func (err *ErrSqrt) Error() string {
	return f("sqrt of negative value %d at address %d", int64(err.Value), err.Address)
}

func (err *ErrSqrt) Unwrap() error {
	return ErrDomain
}

// ErrSyntax locates an assembler error.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrInvalidOperand
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Unwrap() error {
	return ErrInvalidOperand
}
