// Package snapshot audits element selectors against a single fetched copy of
// the page HTML, without launching a browser. CSS selectors are evaluated
// directly; the simple XPath forms that show up in locator files are
// converted to CSS first. A static audit checks attachment only: it cannot
// judge rendered visibility.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"uicheck/pkg/config"
	"uicheck/pkg/locator"
	"uicheck/pkg/utils"
)

// Auditor fills the executor's session contract over a static HTML snapshot:
// Start fetches and parses the page, Probe queries the parsed document, and
// Teardown releases nothing heavier than the document tree.
type Auditor struct {
	settings config.Settings
	client   *http.Client
	doc      *goquery.Document
	html     []byte
	closed   bool
}

// NewAuditor allocates an inert auditor; nothing is fetched until Start.
func NewAuditor(settings config.Settings) *Auditor {
	return &Auditor{
		settings: settings,
		client:   utils.NewHTTPClient(settings.NavigationTimeout),
	}
}

// Start fetches the target page once and parses it into a queryable document.
func (a *Auditor) Start() error {
	slog.Info("Fetching page snapshot", "url", a.settings.URL)
	resp, err := a.client.Get(a.settings.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch '%s': %w", a.settings.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to fetch '%s': unexpected status %d", a.settings.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from '%s': %w", a.settings.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to parse HTML from '%s': %w", a.settings.URL, err)
	}

	a.doc = doc
	a.html = body
	slog.Info("Snapshot fetched", "url", a.settings.URL, "bytes", len(body))
	return nil
}

// Probe reports whether the selector matches at least one node in the
// snapshot. The wait state and timeout are irrelevant against a static
// document and are accepted only to satisfy the probing contract.
func (a *Auditor) Probe(selector string, state locator.WaitState, timeout time.Duration) (bool, string) {
	sel := selector
	if strings.HasPrefix(selector, "//") || strings.HasPrefix(selector, "(") {
		converted, err := xpathToCSS(selector)
		if err != nil {
			return false, fmt.Sprintf("cannot audit selector: %v", err)
		}
		slog.Debug("Converted XPath locator", "xpath", selector, "css", converted)
		sel = converted
	}

	if a.doc.Find(sel).Length() == 0 {
		return false, fmt.Sprintf("selector '%s' matched no nodes in the page snapshot", selector)
	}
	return true, ""
}

// Screenshot writes the fetched page source under dir. A static audit has no
// rendered viewport, so the failure artifact is the HTML itself.
func (a *Auditor) Screenshot(dir, name string) (string, error) {
	if len(a.html) == 0 {
		return "", fmt.Errorf("no snapshot is loaded")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, name+".html")
	if err := os.WriteFile(path, a.html, 0644); err != nil {
		return "", fmt.Errorf("failed to write page snapshot: %w", err)
	}
	return path, nil
}

// Teardown drops the parsed document. Idempotent, like the live session, so
// the run bracket treats both the same way.
func (a *Auditor) Teardown() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.doc = nil
	a.html = nil
	return nil
}

// xpathToCSS converts the simple XPath forms locator files tend to carry
// (element, descendant, and attribute steps) to CSS selectors. Anything
// beyond those is rejected.
func xpathToCSS(xpath string) (string, error) {
	// Attribute selection, e.g. //div[@id='main'] or //div/span[@class='x'].
	// The location path in front of the attribute converts like any other.
	if strings.Contains(xpath, "[@") && strings.HasSuffix(xpath, "]") {
		parts := strings.SplitN(xpath, "[@", 2)
		element, err := xpathStepsToCSS(parts[0])
		if err != nil {
			return "", err
		}
		attrPart := strings.TrimSuffix(parts[1], "]")

		if strings.Contains(attrPart, "=") {
			attrParts := strings.SplitN(attrPart, "=", 2)
			attrName := strings.TrimSpace(attrParts[0])
			attrValue := strings.Trim(strings.TrimSpace(attrParts[1]), "'\"")
			return fmt.Sprintf("%s[%s='%s']", element, attrName, attrValue), nil
		}
		return fmt.Sprintf("%s[%s]", element, attrPart), nil
	}

	return xpathStepsToCSS(xpath)
}

// xpathStepsToCSS converts a bare location path: //div/span becomes the
// child chain div > span, //div//span the descendant chain div span.
func xpathStepsToCSS(xpath string) (string, error) {
	if !strings.HasPrefix(xpath, "//") {
		return "", fmt.Errorf("cannot convert XPath '%s' to a CSS selector", xpath)
	}
	rest := strings.TrimPrefix(xpath, "//")
	if rest == "" {
		return "", fmt.Errorf("cannot convert XPath '%s' to a CSS selector", xpath)
	}
	if !strings.Contains(rest, "/") {
		return rest, nil
	}
	rest = strings.ReplaceAll(rest, "//", " ")
	rest = strings.ReplaceAll(rest, "/", " > ")
	return strings.TrimSpace(rest), nil
}
