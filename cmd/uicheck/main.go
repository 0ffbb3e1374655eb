// Package main implements the command-line interface for uicheck.
// It parses arguments, builds the run settings, drives the validation
// through the executor, reports the results, and exits 0 only when every
// described element was found on the target page.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"uicheck/pkg/browser"
	"uicheck/pkg/config"
	"uicheck/pkg/executor"
	"uicheck/pkg/reporter"
	"uicheck/pkg/snapshot"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	urlFlag := flag.String("url", cfg.URL, "Target page URL (required; env URL)")
	browserFlag := flag.String("browser", string(cfg.Browser), "Browser engine: chromium, firefox or webkit (env BROWSER)")
	headless := flag.Bool("headless", cfg.Headless, "Run the browser headless (env HEADLESS)")
	locators := flag.String("locators", cfg.LocatorPath, "Path to the locator file (.yaml, .yml, .json or .xml)")
	navTimeout := flag.Duration("nav-timeout", cfg.NavigationTimeout, "Page navigation timeout")
	elementTimeout := flag.Duration("element-timeout", cfg.ElementTimeout, "Default per-element wait timeout")
	screenshotDir := flag.String("screenshot-dir", cfg.ScreenshotDir, "Directory for failure artifacts (empty disables; env SCREENSHOT_DIR)")
	junitPath := flag.String("junit", cfg.JUnitPath, "Write a JUnit XML report to this path")
	static := flag.Bool("static", cfg.Static, "Audit a fetched HTML snapshot instead of driving a browser")
	install := flag.Bool("install", false, "Install the playwright driver and the selected browser, then exit")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Setup structured logging
	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	b, err := config.ParseBrowser(*browserFlag)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	cfg.URL = *urlFlag
	cfg.Browser = b
	cfg.Headless = *headless
	cfg.LocatorPath = *locators
	cfg.NavigationTimeout = *navTimeout
	cfg.ElementTimeout = *elementTimeout
	cfg.ScreenshotDir = *screenshotDir
	cfg.JUnitPath = *junitPath
	cfg.Static = *static

	// Install mode: fetch the driver and engine, then exit.
	if *install {
		slog.Info("Installing browser engine", "browser", cfg.Browser)
		if err := browser.Install(cfg.Browser); err != nil {
			slog.Error("Install failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Install complete", "browser", cfg.Browser)
		os.Exit(0)
	}

	// 1. Validate settings
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// 2. Run the validation
	var sess executor.Session
	if cfg.Static {
		sess = snapshot.NewAuditor(cfg)
	} else {
		sess = browser.NewSession(cfg)
	}
	result := executor.Execute(cfg, sess)

	// 3. Report results
	reporter.PrintRunResult(result, os.Stdout)
	if cfg.JUnitPath != "" {
		if err := reporter.WriteJUnit(result, cfg.JUnitPath); err != nil {
			slog.Error("Failed to write JUnit report", "error", err)
		} else {
			slog.Info("JUnit report written", "path", cfg.JUnitPath)
		}
	}

	// 4. Exit code: 0 only when everything was found and nothing broke
	os.Exit(result.ExitCode())
}
