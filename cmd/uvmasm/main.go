// Copyright 2025, evrirus

// Command uvmasm assembles a UVM listing into a binary program.
//
//	uvmasm [-t] [-z] [-v] [-D NAME=VALUE]... input.csv output.bin
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/evrirus/mireaconfig3/cpu"
	"github.com/evrirus/mireaconfig3/io"
)

type defines map[string]string

func (d defines) String() string {
	return fmt.Sprintf("%v", map[string]string(d))
}

func (d defines) Set(value string) error {
	name, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("%q: expected NAME=VALUE", value)
	}
	d[name] = val
	return nil
}

func main() {
	var test bool
	var compress bool
	var verbose bool
	predefs := defines{}

	flag.BoolVar(&test, "t", false, "Test mode: print the listing and machine code")
	flag.BoolVar(&compress, "z", false, "Write a zstd compressed image")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(predefs, "D", "Predefine an equate, NAME=VALUE")

	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("%v: usage: %v [flags] input.csv output.bin", os.Args[0], os.Args[0])
	}
	input := flag.Arg(0)
	output := flag.Arg(1)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range predefs {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	rom := &io.Rom{Data: prog.Binary()}

	if test {
		fmt.Println("=== Listing ===")
		for _, line := range prog.Lines {
			fmt.Println(line.String())
		}
		fmt.Println("=== Machine code (HEX) ===")
		fmt.Println(rom.Hex())
	}

	ouf, err := os.Create(output)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if compress {
		err = rom.Compress(ouf)
	} else {
		_, err = rom.WriteTo(ouf)
	}
	if err != nil {
		ouf.Close()
		log.Fatalf("%v: %v", output, err)
	}

	err = ouf.Close()
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	fmt.Printf("Assembled %d instructions, %d bytes: %v\n", len(prog.Lines), len(rom.Data), output)
}
