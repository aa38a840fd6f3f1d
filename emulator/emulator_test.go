package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evrirus/mireaconfig3/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(MEMORY_SIZE, emu.Cpu.Memory.Len())

	defines := map[string]string{}
	for k, v := range emu.Defines() {
		defines[k] = v
	}
	assert.Equal("2048", defines["EMULATOR_MEMORY_SIZE"])
	assert.Equal("28", defines["LOAD_CONST"])
}

func doRunProgram(emu *Emulator, program []string, t *testing.T) (err error) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	return emu.Run()
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	trace := &bytes.Buffer{}
	emu.Cpu.Trace = trace

	program := []string{
		"LOAD_CONST,5,42",
		"STORE,5,6",
		"SQRT,6,-,7",
	}

	err := doRunProgram(emu, program, t)
	assert.NoError(err)

	assert.Equal(cpu.Cell(42), emu.Cpu.Memory.Read(5))
	assert.Equal(cpu.Cell(42), emu.Cpu.Memory.Read(6))
	assert.Equal(cpu.Cell(6), emu.Cpu.Memory.Read(7))
	assert.Equal(20, emu.Cpu.Pc)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(3, strings.Count(trace.String(), "\n"))
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("28,1,4\n19,1,0,2"))
	assert.NoError(err)
	emu.Program = prog
	assert.NoError(emu.Reset())

	for _, line := range prog.Lines {
		assert.Equal(line.LineNo, emu.LineNo())
		assert.Equal(line.Offset, emu.Cpu.Pc)
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(cpu.Cell(2), emu.Cpu.Memory.Read(2))
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = nil
	emu.Rom.Data = []byte{0x1c, 0x00, 0x00, 0x09, 0x00, 0x00}

	assert.NoError(emu.Reset())
	assert.NoError(emu.Run())
	assert.Equal(cpu.Cell(9), emu.Cpu.Memory.Read(0))
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	// Memory cells are only negative when set from outside the program.
	program := []string{
		"LOAD_CONST,1,16",
		"SQRT,0,-,2",
	}

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	emu.Program = prog
	assert.NoError(emu.Reset())
	emu.Cpu.Memory.Write(0, -1)

	err = emu.Run()
	assert.True(errors.Is(err, cpu.ErrDomain))
	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(2, er.LineNo)
		assert.Equal(6, er.Pc)
	}
	assert.Equal(cpu.Cell(16), emu.Cpu.Memory.Read(1))
	assert.Equal(cpu.Cell(0), emu.Cpu.Memory.Read(2))
}

func TestEmulatorUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []byte{0x11, 0x00, 0x00, 0x01, 0x00, 0xff}

	assert.NoError(emu.Reset())
	err := emu.Run()
	assert.True(errors.Is(err, cpu.ErrUnknownOpcode))
	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(5, er.Pc)
		assert.Equal(0, er.LineNo)
	}
}

func TestEmulatorSnapshot(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"LOAD_CONST,1,10",
		"LOAD_CONST,2,20",
		"LOAD_MEM,3,2,1",
	}
	assert.NoError(doRunProgram(emu, program, t))

	snap := emu.Snapshot(0, 6)
	assert.Equal(0, snap.Start)
	assert.Equal([]int64{0, 10, 20, 10, 20, 0}, snap.Values)

	snap = emu.Snapshot(2, 4)
	assert.Equal(2, snap.Start)
	assert.Equal([]int64{20, 10}, snap.Values)

	snap = emu.Snapshot(0, -1)
	assert.Equal(MEMORY_SIZE, len(snap.Values))

	snap = emu.Snapshot(MEMORY_SIZE-1, MEMORY_SIZE+10)
	assert.Equal([]int64{0}, snap.Values)
}
