// Command firrtl parses a FIRRTL source file and prints its
// canonical dump, or a formatted parse error on failure.
package main

import (
	"fmt"
	"os"

	"github.com/eigenform/firrtl-go"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: firrtl <file.fir>")
		os.Exit(1)
	}

	f, err := firrtl.FromFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	circuit, parseErr := f.Parse()
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, parseErr)
		os.Exit(1)
	}

	fmt.Print(circuit.Dump())
}
