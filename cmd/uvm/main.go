// Copyright 2025, evrirus

// Command uvm runs a UVM binary program and dumps its memory as JSON.
//
//	uvm [-start N] [-end N] [-limit N] [-trace] [-v] input.bin dump.json
//
// On any failure the diagnostic is printed, the exit status is non-zero and
// no dump is written.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/evrirus/mireaconfig3/emulator"
)

func main() {
	var start int
	var end int
	var limit int
	var trace bool
	var verbose bool

	flag.IntVar(&start, "start", 0, "First address of the memory dump")
	flag.IntVar(&end, "end", -1, "End address (exclusive) of the memory dump, -1 for end of memory")
	flag.IntVar(&limit, "limit", 0, "Maximum number of instructions to execute, 0 for no limit")
	flag.BoolVar(&trace, "trace", true, "Print each instruction before it executes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("%v: usage: %v [flags] input.bin dump.json", os.Args[0], os.Args[0])
	}
	input := flag.Arg(0)
	dump := flag.Arg(1)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Cpu.Limit = limit
	if trace {
		emu.Cpu.Trace = os.Stdout
	}

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	_, err = emu.Rom.ReadFrom(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		log.Fatalf("%v: %v", input, err)
	}

	ouf, err := os.Create(dump)
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	_, err = emu.Snapshot(start, end).WriteTo(ouf)
	if err != nil {
		ouf.Close()
		log.Fatalf("%v: %v", dump, err)
	}

	err = ouf.Close()
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	fmt.Printf("Executed %d instructions, memory dump saved to %v\n", emu.Cpu.Ticks, dump)
}
