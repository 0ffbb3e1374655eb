// Package validator checks every described element against a page and
// aggregates the outcomes. A missing element is a normal, recorded outcome;
// the validator never raises for it and never stops early, so the report
// always covers the full element list.
package validator

import (
	"log/slog"
	"time"

	"uicheck/pkg/locator"
)

// Prober locates a single element within a bounded wait. Implementations
// report found=false with a detail message instead of returning an error:
// from the validator's point of view an absent element is data, not a
// failure of the probe itself.
type Prober interface {
	Probe(selector string, state locator.WaitState, timeout time.Duration) (found bool, detail string)
}

// ElementResult is the outcome for one element.
type ElementResult struct {
	Name     string
	Selector string
	Found    bool
	Detail   string  // empty when found, otherwise the reason
	Duration float64 // seconds spent probing
}

// Result aggregates a full validation pass. Overall is the conjunction of
// every per-element outcome; with no elements it is vacuously true.
type Result struct {
	Overall  bool
	Elements []ElementResult
}

// FoundCount returns how many elements were located.
func (r *Result) FoundCount() int {
	n := 0
	for _, elem := range r.Elements {
		if elem.Found {
			n++
		}
	}
	return n
}

// Options carry the wait defaults applied when a spec does not override them.
type Options struct {
	DefaultState   locator.WaitState
	DefaultTimeout time.Duration
}

// DefaultOptions returns sensible wait defaults.
func DefaultOptions() Options {
	return Options{
		DefaultState:   locator.StateVisible,
		DefaultTimeout: 5 * time.Second,
	}
}

// Validate probes every spec in order and records each outcome. It does not
// short-circuit: elements after a failure are still checked so the report
// names everything that is missing, not just the first gap.
func Validate(p Prober, specs []locator.Spec, opts Options) *Result {
	if opts.DefaultState == "" {
		opts.DefaultState = DefaultOptions().DefaultState
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultOptions().DefaultTimeout
	}

	result := &Result{
		Overall:  true,
		Elements: make([]ElementResult, 0, len(specs)),
	}
	if len(specs) == 0 {
		slog.Warn("No elements described; validation passes vacuously")
		return result
	}

	for i, spec := range specs {
		state := spec.State
		if state == "" {
			state = opts.DefaultState
		}
		timeout := spec.Timeout
		if timeout <= 0 {
			timeout = opts.DefaultTimeout
		}

		slog.Info("Checking element",
			"element", i+1,
			"total", len(specs),
			"name", spec.Name,
			"selector", spec.Selector)

		start := time.Now()
		found, detail := p.Probe(spec.Selector, state, timeout)
		elem := ElementResult{
			Name:     spec.Name,
			Selector: spec.Selector,
			Found:    found,
			Detail:   detail,
			Duration: time.Since(start).Seconds(),
		}
		result.Elements = append(result.Elements, elem)

		if found {
			slog.Info("Element found", "name", spec.Name, "duration", elem.Duration)
		} else {
			result.Overall = false
			slog.Warn("Element missing",
				"name", spec.Name,
				"selector", spec.Selector,
				"detail", detail)
		}
	}

	return result
}
