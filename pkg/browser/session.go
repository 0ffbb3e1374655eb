// Package browser manages the lifetime of one automated browser session:
// engine launch, page navigation, element probing, screenshots, and
// teardown. It wraps playwright-go, which drives all three configurable
// engines (chromium, firefox, webkit).
package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"

	"uicheck/pkg/config"
	"uicheck/pkg/locator"
)

// NavigationError reports a session that never reached the target page:
// driver or engine launch failure, an unreachable URL, or a navigation
// timeout.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("failed to open '%s': %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Session owns one browser instance and its single page. A Session is inert
// until Start and must not be probed after Teardown.
type Session struct {
	settings config.Settings
	pw       *playwright.Playwright
	browser  playwright.Browser
	page     playwright.Page
	closed   bool
}

// NewSession allocates an inert session handle. No OS resources are acquired
// until Start, so Teardown on a fresh handle is a no-op.
func NewSession(settings config.Settings) *Session {
	return &Session{settings: settings}
}

// Start launches the configured engine, opens a page, and navigates to the
// target URL. Any failure is reported as a NavigationError; resources
// acquired before the failure are released by the next Teardown.
func (s *Session) Start() error {
	pw, err := playwright.Run()
	if err != nil {
		return &NavigationError{URL: s.settings.URL, Err: fmt.Errorf("failed to start driver: %w", err)}
	}
	s.pw = pw

	engine, err := engineFor(pw, s.settings.Browser)
	if err != nil {
		return &NavigationError{URL: s.settings.URL, Err: err}
	}

	slog.Info("Launching browser", "browser", s.settings.Browser, "headless", s.settings.Headless)
	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.settings.Headless),
	})
	if err != nil {
		return &NavigationError{URL: s.settings.URL, Err: fmt.Errorf("failed to launch %s: %w", s.settings.Browser, err)}
	}
	s.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		return &NavigationError{URL: s.settings.URL, Err: fmt.Errorf("failed to open page: %w", err)}
	}
	s.page = page

	slog.Info("Opening URL", "url", s.settings.URL, "timeout", s.settings.NavigationTimeout)
	_, err = page.Goto(s.settings.URL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(s.settings.NavigationTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return &NavigationError{URL: s.settings.URL, Err: err}
	}

	if title, err := page.Title(); err == nil {
		slog.Info("Page loaded", "title", title)
	}
	return nil
}

// Probe waits for the first match of the selector to reach the wanted state
// within the given timeout. Timeouts and lookup failures are reported in the
// detail string, never raised.
func (s *Session) Probe(selector string, state locator.WaitState, timeout time.Duration) (bool, string) {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   waitStateFor(state),
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return false, fmt.Sprintf("not %s within %s: %v", state, timeout, err)
	}
	return true, ""
}

// Screenshot writes a full-page PNG under dir and returns its path.
func (s *Session) Screenshot(dir, name string) (string, error) {
	if s.page == nil {
		return "", fmt.Errorf("no page is open")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, name+".png")
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return path, nil
}

// Teardown releases everything Start acquired. It is idempotent: calling it
// on a never-started or already-closed session is a no-op.
func (s *Session) Teardown() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		s.browser = nil
		s.page = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop driver: %w", err))
		}
		s.pw = nil
	}

	slog.Debug("Session torn down")
	return errors.Join(errs...)
}

// Install downloads the playwright driver plus the configured engine. Meant
// for first-run setup via the -install flag.
func Install(b config.Browser) error {
	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{string(b)},
	})
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", b, err)
	}
	return nil
}

func engineFor(pw *playwright.Playwright, b config.Browser) (playwright.BrowserType, error) {
	switch b {
	case config.BrowserChromium:
		return pw.Chromium, nil
	case config.BrowserFirefox:
		return pw.Firefox, nil
	case config.BrowserWebkit:
		return pw.WebKit, nil
	}
	return nil, fmt.Errorf("unsupported browser '%s'", b)
}

func waitStateFor(state locator.WaitState) *playwright.WaitForSelectorState {
	if state == locator.StateAttached {
		return playwright.WaitForSelectorStateAttached
	}
	return playwright.WaitForSelectorStateVisible
}
