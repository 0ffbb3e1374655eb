// Package main provides a small lint tool for locator files: it parses a
// file exactly the way uicheck does and prints what it found, so locator
// authors can check their edits without driving a browser.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"uicheck/pkg/locator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: locatorlint <path-to-locator-file>")
		os.Exit(1)
	}

	filePath := os.Args[1]
	fmt.Printf("Parsing file: %s\n\n", filePath)

	specs, err := locator.Load(filePath)
	if err != nil {
		color.Red("Error parsing locator file: %v\n", err)
		os.Exit(1)
	}

	color.Green("✅ Successfully parsed locator file!\n")
	fmt.Printf("Elements (%d):\n", len(specs))
	for i, spec := range specs {
		fmt.Printf("  [%d] %s: %s", i+1, spec.Name, spec.Selector)
		if spec.State != "" {
			fmt.Printf(" (state=%s)", spec.State)
		}
		if spec.Timeout > 0 {
			fmt.Printf(" (timeout=%s)", spec.Timeout)
		}
		fmt.Println()
	}

	if len(specs) == 0 {
		color.Yellow("\nFile is well-formed but describes no elements; a run would pass vacuously.\n")
	}
}
