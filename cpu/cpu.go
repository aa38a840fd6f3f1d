package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
)

// State is the execution state of the Cpu.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

var _cpu_defines = map[string]string{
	"LOAD_CONST":  fmt.Sprintf("%d", OP_LOAD_CONST),
	"LOAD_MEM":    fmt.Sprintf("%d", OP_LOAD_MEM),
	"STORE":       fmt.Sprintf("%d", OP_STORE),
	"SQRT":        fmt.Sprintf("%d", OP_SQRT),
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
}

// Cpu is the simulation context of the UVM.
type Cpu struct {
	Verbose bool      // Set to enable verbose logging.
	Trace   io.Writer // If set, receives a trace line per executed instruction.
	Limit   int       // If positive, maximum number of instructions to execute.

	Program []byte // Program being executed.
	Memory  Memory // Data memory.
	Pc      int    // Offset of the next instruction in Program.
	State   State  // Execution state.
	Ticks   int    // Executed instructions counter.

	capacity int
}

// NewCpu creates a new CPU with capacity initial memory cells.
func NewCpu(capacity int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:   *NewMemory(capacity),
		capacity: capacity,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %d/%d\n", "pc", cpu.Pc, len(cpu.Program))
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 6s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("% 6s: %d\n", "memory", cpu.Memory.Len())

	return
}

// Reset the CPU state.
// - Zeros the program counter and statistics counters.
// - Clears memory back to its initial capacity.
// - Sets the CPU to running.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.State = STATE_RUNNING
	cpu.Memory.Reset(cpu.capacity)
}

// Load installs a program and resets the CPU.
func (cpu *Cpu) Load(program []byte) {
	cpu.Program = program
	cpu.Reset()

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}
}

// Fetch decodes the instruction at the program counter.
func (cpu *Cpu) Fetch() (ins *Instruction, next int, err error) {
	return Decode(cpu.Program, cpu.Pc)
}

// Tick executes a single instruction. It returns ErrHalted once the
// program is exhausted. Any other error also halts the CPU, leaving the
// program counter on the failing instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State == STATE_HALTED {
		err = ErrHalted
		return
	}

	defer func() {
		if err != nil {
			cpu.State = STATE_HALTED
		}
	}()

	ins, next, err := cpu.Fetch()
	if err != nil {
		return
	}
	if ins == nil {
		if cpu.Verbose {
			log.Printf("cpu: halted at %d after %d ticks", cpu.Pc, cpu.Ticks)
		}
		err = ErrHalted
		return
	}

	if cpu.Limit > 0 && cpu.Ticks >= cpu.Limit {
		err = ErrTickLimit
		return
	}

	if cpu.Trace != nil {
		_, err = fmt.Fprintf(cpu.Trace, "PC=%d | EXECUTE: %v\n", cpu.Pc, ins)
		if err != nil {
			return
		}
	}

	err = cpu.Execute(*ins)
	if err != nil {
		return
	}

	cpu.Pc = next
	cpu.Ticks++

	return
}

// Run ticks until the program is exhausted.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if errors.Is(err, ErrHalted) {
			return nil
		}
		if err != nil {
			return
		}
	}
}

// Execute applies a single decoded instruction to memory.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%v: %w", ins.Op, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%04d: %v %v", cpu.Pc, ins.Op, ins)
	}

	mem := &cpu.Memory

	switch ins.Op {
	case OP_LOAD_CONST:
		mem.Write(ins.B, Cell(ins.C))
	case OP_LOAD_MEM:
		// Forward, one cell at a time: when D < B < D+C the copy reads
		// cells it has already overwritten.
		for i := range ins.C {
			mem.Write(ins.B+i, mem.Read(ins.D+i))
		}
	case OP_STORE:
		mem.Write(ins.C, mem.Read(ins.B))
	case OP_SQRT:
		// C is reserved.
		value := mem.Read(ins.B)
		var root Cell
		root, err = Isqrt(value)
		if err != nil {
			err = &ErrSqrt{Address: ins.B, Value: value}
			return
		}
		mem.Write(ins.D, root)
	default:
		err = &ErrOpcode{Code: int(ins.Op), Offset: cpu.Pc}
		return
	}

	return
}
