// Copyright 2025, evrirus

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a single pass assembler for the UVM.
//
// Each line of input is a comma separated row "A,B,C,D": the opcode
// followed by up to three operands. A missing, blank or '-' operand is
// zero when the opcode carries that field, and is dropped otherwise.
// Text after ';' is a comment.
//
// Two directives are supported:
//
//	.equ NAME VALUE    ; define an equate
//	$(EXPR)            ; compile-time expression over integer equates
//
// The opcode mnemonics (LOAD_CONST, LOAD_MEM, STORE, SQRT) are predefined.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefined system equates
func sysEquate() (equ map[string]string) {
	equ = maps.Clone(_cpu_defines)
	equ["LINENO"] = "0"
	return
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a line into its fields.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// .equ NAME VALUE
	if strings.HasPrefix(line, ".equ") {
		words = strings.Fields(line)
		if words[0] != ".equ" || len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Split(line, ",")
	for n, word := range words {
		word = strings.TrimSpace(word)
		equate, ok := asm.Equate[word]
		if ok {
			word = equate
		}
		words[n] = word
	}

	// Rows without an opcode are skipped.
	if len(words[0]) == 0 {
		words = nil
	}

	return
}

// currentOffset gets the offset of the next instruction.
func (asm *Assembler) currentOffset() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Offset + last.Width()
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Equate = sysEquate()
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		if len(line) == 0 {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords evaluates the fields of a row.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	if len(words) > 4 {
		err = ErrOpcodeExtraArgs
		return
	}

	a, err := asm.valueOf(words[0])
	if err != nil {
		return
	}
	if a < 0 || a > 0xff || !Opcode(a).Valid() {
		err = &ErrOpcode{Code: int(a), Offset: -1}
		return
	}

	ins := Instruction{Op: Opcode(a)}
	layout, _ := LayoutOf(ins.Op)

	var fields [3]uint32
	for n, field := range []Field{FIELD_B, FIELD_C, FIELD_D} {
		if !layout.Has(field) {
			continue
		}
		var word string
		if n+1 < len(words) {
			word = words[n+1]
		}
		if len(word) == 0 || word == "-" {
			continue
		}
		var value int64
		value, err = asm.valueOf(word)
		if err != nil {
			return
		}
		if value < 0 || value > int64(layout.Max(field)) {
			err = &ErrOperand{Field: field, Value: value, Max: layout.Max(field)}
			return
		}
		fields[n] = uint32(value)
	}
	ins.B, ins.C, ins.D = fields[0], fields[1], fields[2]

	asm.Lines = append(asm.Lines, Line{
		LineNo:      lineno,
		Offset:      asm.currentOffset(),
		Words:       words,
		Instruction: ins,
	})

	return
}
