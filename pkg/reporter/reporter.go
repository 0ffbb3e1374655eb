// Package reporter provides functions for formatting and outputting run results.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"uicheck/pkg/executor"
	"uicheck/pkg/validator"
)

// PrintRunResult formats and prints the run result to the provided writer.
func PrintRunResult(result *executor.RunResult, w io.Writer) {
	if result == nil {
		fmt.Fprintln(w, "No result available.")
		return
	}

	// Create colored output helpers
	success := color.New(color.FgGreen).SprintFunc()
	failure := color.New(color.FgRed).SprintFunc()
	highlight := color.New(color.FgCyan).SprintFunc()
	warning := color.New(color.FgYellow).SprintFunc()

	// Print header
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintf(w, "UI Validation Result: %s\n", result.URL)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", 80))

	// Overall status
	statusStr := success("SUCCESS")
	if result.ExitCode() != 0 {
		statusStr = failure("FAILURE")
	}
	fmt.Fprintf(w, "Overall Status: %s\n", statusStr)
	fmt.Fprintf(w, "Browser:        %s\n", highlight(result.Browser))
	fmt.Fprintf(w, "Run ID:         %s\n", result.RunID)
	fmt.Fprintf(w, "Execution Time: %s\n\n", time.Duration(result.Duration*float64(time.Second)))

	// A critical error preempts any element breakdown
	if result.Err != nil {
		fmt.Fprintf(w, "Error: %s\n", failure(result.Err.Error()))
	}

	if result.Validation != nil {
		printElements(w, result.Validation, success, failure, warning)
	}

	if result.Screenshot != "" {
		fmt.Fprintf(w, "Failure artifact: %s\n", warning(result.Screenshot))
	}

	// Print footer
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 80))
}

// printElements formats and prints the per-element breakdown.
func printElements(
	w io.Writer,
	validation *validator.Result,
	success, failure, warning func(a ...interface{}) string,
) {
	found := validation.FoundCount()
	fmt.Fprintf(w, "Elements: %d found, %d missing\n", found, len(validation.Elements)-found)

	if len(validation.Elements) == 0 {
		fmt.Fprintf(w, "  %s\n", warning("No elements described; nothing to validate."))
		return
	}

	for i, elem := range validation.Elements {
		status := success("✓")
		if !elem.Found {
			status = failure("✗")
		}
		fmt.Fprintf(w, "  %s %d. %s (%s)\n", status, i+1, elem.Name, elem.Selector)

		// Show the reason if the element was not found
		if elem.Detail != "" {
			fmt.Fprintf(w, "       %s\n", failure(elem.Detail))
		}
	}
}
