// Package config defines the run settings for uicheck: the target URL, the
// browser engine, timeouts, and input/output paths. Settings are built once
// at process start from environment fallbacks plus command-line flags, then
// handed to the executor as a plain value. There is no global settings state.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Browser names the engine a session runs on.
type Browser string

const (
	BrowserChromium Browser = "chromium"
	BrowserFirefox  Browser = "firefox"
	BrowserWebkit   Browser = "webkit"
)

// ParseBrowser maps a user-supplied engine name to a Browser value.
func ParseBrowser(name string) (Browser, error) {
	switch Browser(strings.ToLower(strings.TrimSpace(name))) {
	case BrowserChromium:
		return BrowserChromium, nil
	case BrowserFirefox:
		return BrowserFirefox, nil
	case BrowserWebkit:
		return BrowserWebkit, nil
	}
	return "", fmt.Errorf("unsupported browser '%s' (want chromium, firefox or webkit)", name)
}

// Settings holds everything a single validation run needs. The value is
// read-only after construction.
type Settings struct {
	URL               string        // target page, required
	Browser           Browser       // engine to launch
	Headless          bool          // run without a visible window
	NavigationTimeout time.Duration // bound on page load
	ElementTimeout    time.Duration // default bound on each element wait
	LocatorPath       string        // locator file to load
	ScreenshotDir     string        // failure artifact directory, empty disables
	JUnitPath         string        // JUnit XML report path, empty disables
	Static            bool          // audit a fetched HTML snapshot instead of a live browser
}

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Defaults returns the baseline settings before environment and flags apply.
func Defaults() Settings {
	return Settings{
		Browser:           BrowserChromium,
		Headless:          true,
		NavigationTimeout: 30 * time.Second,
		ElementTimeout:    5 * time.Second,
		LocatorPath:       "Locators/locator.yaml",
	}
}

// FromEnv overlays the environment fallbacks (URL, BROWSER, HEADLESS,
// SCREENSHOT_DIR) on the defaults. Flags parsed later take precedence by
// using the returned values as their defaults.
func FromEnv() (Settings, error) {
	s := Defaults()

	if v := os.Getenv("URL"); v != "" {
		s.URL = v
	}
	if v := os.Getenv("BROWSER"); v != "" {
		b, err := ParseBrowser(v)
		if err != nil {
			return s, &ConfigError{Field: "BROWSER", Reason: err.Error()}
		}
		s.Browser = b
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		h, err := strconv.ParseBool(v)
		if err != nil {
			return s, &ConfigError{Field: "HEADLESS", Reason: fmt.Sprintf("not a boolean: '%s'", v)}
		}
		s.Headless = h
	}
	if v := os.Getenv("SCREENSHOT_DIR"); v != "" {
		s.ScreenshotDir = v
	}

	return s, nil
}

// Validate checks that the settings describe a runnable validation.
func (s *Settings) Validate() error {
	if s.URL == "" {
		return &ConfigError{Field: "url", Reason: "target URL is required"}
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return &ConfigError{Field: "url", Reason: fmt.Sprintf("'%s' is not an absolute URL", s.URL)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Field: "url", Reason: fmt.Sprintf("unsupported scheme '%s'", u.Scheme)}
	}
	if _, err := ParseBrowser(string(s.Browser)); err != nil {
		return &ConfigError{Field: "browser", Reason: err.Error()}
	}
	if s.NavigationTimeout <= 0 {
		return &ConfigError{Field: "nav-timeout", Reason: "must be positive"}
	}
	if s.ElementTimeout <= 0 {
		return &ConfigError{Field: "element-timeout", Reason: "must be positive"}
	}
	if s.LocatorPath == "" {
		return &ConfigError{Field: "locators", Reason: "locator file path is required"}
	}
	return nil
}
