// Package utils provides small helpers shared across the uicheck packages.
// This file implements the HTTP client used to fetch static page snapshots.
package utils

import (
	"fmt"
	"net/http"
	"time"
)

// NewHTTPClient returns an HTTP client with a bounded overall timeout and a
// ten-redirect cap, mirroring the navigation limits of a live session.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
}
