package snapshot

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uicheck/pkg/config"
	"uicheck/pkg/locator"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>sample</title></head>
<body>
    <header id="main-header"><h1>Sample</h1></header>
    <div id="content">
        <ul class="items"><li class="item">One</li></ul>
        <input id="search-box" type="text">
    </div>
    <footer><span class="copyright">©</span></footer>
</body>
</html>`

func newTestAuditor(t *testing.T, handler http.HandlerFunc) *Auditor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Defaults()
	cfg.URL = srv.URL
	return NewAuditor(cfg)
}

func servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, samplePage)
}

func TestAuditorProbesCSSSelectors(t *testing.T) {
	a := newTestAuditor(t, servePage)
	require.NoError(t, a.Start())

	found, detail := a.Probe("#main-header", locator.StateVisible, time.Second)
	assert.True(t, found)
	assert.Empty(t, detail)

	found, detail = a.Probe(".items .item", locator.StateAttached, time.Second)
	assert.True(t, found)
	assert.Empty(t, detail)

	found, detail = a.Probe("#missing", locator.StateVisible, time.Second)
	assert.False(t, found)
	assert.Contains(t, detail, "matched no nodes")
}

func TestAuditorProbesXPathSelectors(t *testing.T) {
	a := newTestAuditor(t, servePage)
	require.NoError(t, a.Start())

	found, _ := a.Probe("//div[@id='content']", locator.StateAttached, time.Second)
	assert.True(t, found)

	found, _ = a.Probe("//ul/li", locator.StateAttached, time.Second)
	assert.True(t, found)

	found, detail := a.Probe("//ul/li[@class='item']", locator.StateAttached, time.Second)
	assert.True(t, found, "detail: %s", detail)

	// A convertible selector that matches nothing is a plain miss.
	found, detail = a.Probe("//ul/li[@class='absent']", locator.StateAttached, time.Second)
	assert.False(t, found)
	assert.Contains(t, detail, "matched no nodes")

	found, detail = a.Probe("(//li)[1]", locator.StateAttached, time.Second)
	assert.False(t, found)
	assert.Contains(t, detail, "cannot audit selector")
}

func TestAuditorStartRejectsBadResponses(t *testing.T) {
	a := newTestAuditor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	err := a.Start()
	assert.ErrorContains(t, err, "unexpected status 404")

	srv := httptest.NewServer(http.HandlerFunc(servePage))
	srv.Close() // unreachable target
	cfg := config.Defaults()
	cfg.URL = srv.URL
	err = NewAuditor(cfg).Start()
	assert.ErrorContains(t, err, "failed to fetch")
}

func TestAuditorScreenshotWritesPageSource(t *testing.T) {
	a := newTestAuditor(t, servePage)
	require.NoError(t, a.Start())

	dir := t.TempDir()
	path, err := a.Screenshot(dir, "failure-abc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "failure-abc.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "main-header")
}

func TestAuditorTeardownIsIdempotent(t *testing.T) {
	a := newTestAuditor(t, servePage)
	require.NoError(t, a.Start())

	require.NoError(t, a.Teardown())
	require.NoError(t, a.Teardown())
}

func TestXpathToCSS(t *testing.T) {
	cases := []struct {
		xpath   string
		want    string
		wantErr bool
	}{
		{xpath: "//header", want: "header"},
		{xpath: "//ul/li", want: "ul > li"},
		{xpath: "//div//span", want: "div span"},
		{xpath: "//div[@id='main']", want: "div[id='main']"},
		{xpath: `//input[@type="text"]`, want: "input[type='text']"},
		{xpath: "//input[@disabled]", want: "input[disabled]"},
		{xpath: "//div/span[@class='x']", want: "div > span[class='x']"},
		{xpath: "//div//span[@class='x']", want: "div span[class='x']"},
		{xpath: "span", wantErr: true},
		{xpath: "span[@class='x']", wantErr: true},
		{xpath: "//", wantErr: true},
		{xpath: "(//li)[1]", wantErr: true},
		{xpath: "(//li)[@class='x']", wantErr: true},
	}
	for _, c := range cases {
		got, err := xpathToCSS(c.xpath)
		if c.wantErr {
			assert.Error(t, err, "xpath %q", c.xpath)
			continue
		}
		require.NoError(t, err, "xpath %q", c.xpath)
		assert.Equal(t, c.want, got, "xpath %q", c.xpath)
	}
}
