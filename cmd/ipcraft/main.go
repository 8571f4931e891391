// Copyright 2026, bleviet

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bleviet/ipcraft/mapfile"
	"github.com/bleviet/ipcraft/memmap"
)

func main() {
	var mapPath string
	var list bool
	var verbose bool

	flag.StringVar(&mapPath, "m", "", "memory map .yaml file to load")
	flag.BoolVar(&list, "l", false, "List the flattened register address table")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(mapPath) == 0 {
		log.Fatalf("%v: No map file given, use -m", os.Args[0])
	}

	mms, err := mapfile.LoadFile(mapPath)
	if err != nil {
		log.Fatal(err)
	}
	if len(mms) == 0 {
		log.Fatalf("%v: No memory maps", mapPath)
	}

	failed := false
	for _, mm := range mms {
		findings := memmap.Validate(mm)
		for _, finding := range findings {
			fmt.Println(finding.Error())
			if finding.Suggestion != "" {
				fmt.Printf("    suggestion: %v\n", finding.Suggestion)
			}
		}
		if memmap.HasErrors(findings) {
			failed = true
			continue
		}

		if verbose {
			fmt.Printf("%v: %v blocks, %v registers, %#x bytes of address space\n",
				mm.Name, len(mm.AddressBlocks), mm.TotalRegisters(), mm.TotalAddressSpace())
		}

		if list {
			for name, addr := range mm.Addresses() {
				fmt.Printf("%#010x  %v\n", addr, name)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}
