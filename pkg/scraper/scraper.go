package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xhad/f1gpt/internal/models"
)

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// Scraper fetches pages over plain HTTP without running their scripts.
// It is the lightweight alternative to BrowserScraper.
type Scraper struct {
	config ScraperConfig
	client *http.Client
}

func NewWithConfig(config ScraperConfig) *Scraper {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Scraper{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

func New() *Scraper {
	return NewWithConfig(ScraperConfig{})
}

// Scrape downloads url and returns its <body> with all markup stripped.
func (s *Scraper) Scrape(ctx context.Context, url string) (models.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Document{}, err
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Document{}, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.Document{}, err
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	return models.Document{
		URL:     url,
		Content: StripTags(body),
	}, nil
}
