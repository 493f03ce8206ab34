package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html>
	<head><title>Test Page</title></head>
	<body>
		<main>
			<h1>Formula One</h1>
			<p>The <a href="/wiki/FIA">FIA</a> sanctions the championship.</p>
		</main>
	</body>
</html>`

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "no markup here", "no markup here"},
		{"simple", "<p>hello</p>", "hello"},
		{"nested keeps order", "<div><b>first</b> <i>second</i></div>third", "first secondthird"},
		{"attributes", `<a href="https://x.test" class="y">link</a>`, "link"},
		{"self closing", "line<br/>break<img src=x>", "linebreak"},
		{"comments", "a<!-- note -->b", "ab"},
		{"unterminated tag", "text<span class=", "text"},
		{"stray gt kept", "1 > 0 <b>ok</b>", "1 > 0 ok"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripTags(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<")
		})
	}
}

func TestScrapeWithMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "f1gpt-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	s := NewWithConfig(ScraperConfig{Timeout: 5 * time.Second, UserAgent: "f1gpt-test"})

	doc, err := s.Scrape(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, doc.URL)
	assert.NotContains(t, doc.Content, "<")
	assert.NotContains(t, doc.Content, "Test Page", "head content is outside body")

	first := strings.Index(doc.Content, "Formula One")
	second := strings.Index(doc.Content, "FIA sanctions the championship.")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestScrapeNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New().Scrape(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestScrapeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New().Scrape(context.Background(), url)
	assert.Error(t, err)
}

// findChrome prefers CHROME_PATH, then looks for a browser on PATH.
func findChrome() string {
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path
	}
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func TestBrowserScrape(t *testing.T) {
	chrome := findChrome()
	if chrome == "" {
		t.Skip("no Chrome binary found")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	defer server.Close()

	b := NewBrowser(BrowserConfig{Timeout: 30 * time.Second, ExecPath: chrome})

	doc, err := b.Scrape(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, doc.Content, "Formula One")
	assert.Contains(t, doc.Content, "FIA sanctions the championship.")
	assert.NotContains(t, doc.Content, "<")
}

func TestBrowserScrapeReturnsBeforeSubresourcesLoad(t *testing.T) {
	chrome := findChrome()
	if chrome == "" {
		t.Skip("no Chrome binary found")
	}

	const hold = 60 * time.Second
	const bound = 20 * time.Second

	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1>Formula One</h1><img src="/slow"><p>Parsed before the image.</p></body></html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		// the load event cannot fire while this is pending
		select {
		case <-release:
		case <-r.Context().Done():
		case <-time.After(hold):
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	defer close(release)

	b := NewBrowser(BrowserConfig{Timeout: hold, ExecPath: chrome})

	start := time.Now()
	doc, err := b.Scrape(context.Background(), server.URL)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, bound, "Scrape waited for the load event")
	assert.Contains(t, doc.Content, "Formula One")
	assert.Contains(t, doc.Content, "Parsed before the image.")
}
