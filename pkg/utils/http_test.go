package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientStopsRedirectLoops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)
	require.Equal(t, 5*time.Second, client.Timeout)

	resp, err := client.Get(srv.URL)
	if resp != nil {
		resp.Body.Close()
	}
	assert.ErrorContains(t, err, "stopped after 10 redirects")
}
