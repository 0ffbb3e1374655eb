// Package executor orchestrates a validation run. This file contains the
// main Execute function, which drives the run through its states in
// sequence: open the target page, load the element descriptors, validate
// every element, capture a failure artifact when asked to, and tear the
// session down exactly once no matter which step failed.
package executor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"uicheck/pkg/config"
	"uicheck/pkg/locator"
	"uicheck/pkg/validator"
)

// Session is the part of a browser session the executor drives. The live
// implementation is browser.Session, the browserless one snapshot.Auditor;
// tests substitute spies.
type Session interface {
	validator.Prober
	Start() error
	Screenshot(dir, name string) (string, error)
	Teardown() error
}

// RunResult represents the outcome of one validation run.
type RunResult struct {
	RunID      string            // unique per run, names failure artifacts
	URL        string            // target page
	Browser    string            // engine used
	StartTime  time.Time         // when the run started
	EndTime    time.Time         // when the run completed
	Duration   float64           // total duration in seconds
	Validation *validator.Result // per-element outcomes, nil if never reached
	Screenshot string            // failure artifact path, empty if none taken
	Err        error             // critical error, nil when the run completed
}

// ExitCode maps the run outcome to the process exit code once: 0 only when
// every element was found and no critical error occurred, 1 otherwise.
func (r *RunResult) ExitCode() int {
	if r.Err == nil && r.Validation != nil && r.Validation.Overall {
		return 0
	}
	return 1
}

// Execute drives one full run against the given session. The session must be
// inert; Execute owns its whole lifetime. Teardown is guaranteed exactly
// once on every path, including load errors, navigation failures, and panics
// out of the automation layer. The return value is named so the recover
// path below hands the finalized result back instead of nil.
func Execute(cfg config.Settings, sess Session) (result *RunResult) {
	result = &RunResult{
		RunID:     uuid.New().String(),
		URL:       cfg.URL,
		Browser:   string(cfg.Browser),
		StartTime: time.Now(),
	}

	// Outermost: catch anything the run raised, then stamp the timings.
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("validation aborted: %v", r)
		}
		finalizeResult(result)
	}()
	// The session bracket. Armed before the first step that can fail.
	defer func() {
		slog.Info("Tearing down session")
		if err := sess.Teardown(); err != nil {
			slog.Warn("Teardown reported an error", "error", err)
		}
	}()

	slog.Info("Starting validation run",
		"run_id", result.RunID,
		"url", cfg.URL,
		"browser", cfg.Browser)

	// 1. Open the target page.
	slog.Info("Opening target page", "url", cfg.URL)
	if err := sess.Start(); err != nil {
		result.Err = err
		return result
	}

	// 2. Load the element descriptors.
	slog.Info("Loading locator file", "path", cfg.LocatorPath)
	specs, err := locator.Load(cfg.LocatorPath)
	if err != nil {
		result.Err = err
		return result
	}
	slog.Info("Locator file loaded", "elements", len(specs))

	// 3. Validate every element.
	result.Validation = validator.Validate(sess, specs, validator.Options{
		DefaultState:   locator.StateVisible,
		DefaultTimeout: cfg.ElementTimeout,
	})

	// 4. Capture a failure artifact if the run failed and a directory is set.
	if !result.Validation.Overall && cfg.ScreenshotDir != "" {
		path, err := sess.Screenshot(cfg.ScreenshotDir, "failure-"+result.RunID)
		if err != nil {
			slog.Warn("Failed to capture failure artifact", "error", err)
		} else {
			slog.Info("Failure artifact captured", "path", path)
			result.Screenshot = path
		}
	}

	return result
}

// finalizeResult completes the result with timing information and logs the
// verdict.
func finalizeResult(result *RunResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime).Seconds()

	switch {
	case result.Err != nil:
		slog.Error("Validation run aborted",
			"run_id", result.RunID,
			"error", result.Err,
			"duration", result.Duration)
	case result.Validation != nil && !result.Validation.Overall:
		slog.Warn("Validation run found missing elements",
			"run_id", result.RunID,
			"found", result.Validation.FoundCount(),
			"total", len(result.Validation.Elements),
			"duration", result.Duration)
	default:
		slog.Info("Validation run successful",
			"run_id", result.RunID,
			"duration", result.Duration)
	}
}
