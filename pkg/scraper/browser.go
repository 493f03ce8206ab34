package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/xhad/f1gpt/internal/models"
)

type BrowserConfig struct {
	Timeout   time.Duration // 0 leaves the run bounded only by ctx
	UserAgent string
	ExecPath  string // Chrome binary; empty lets chromedp look it up
}

// BrowserScraper renders pages in headless Chrome. Each Scrape call starts
// its own browser process and shuts it down before returning.
type BrowserScraper struct {
	config BrowserConfig
}

func NewBrowser(config BrowserConfig) *BrowserScraper {
	return &BrowserScraper{config: config}
}

func (b *BrowserScraper) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
	)
	if b.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.config.UserAgent))
	}
	if b.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.config.ExecPath))
	}
	return opts
}

// Scrape loads url, waits for DOMContentLoaded, and returns the body's inner
// HTML with all markup stripped.
func (b *BrowserScraper) Scrape(ctx context.Context, url string) (models.Document, error) {
	if b.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
		defer cancel()
	}

	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		navigateDOMContentLoaded(url),
		chromedp.InnerHTML("body", &html, chromedp.ByQuery),
	)
	if err != nil {
		return models.Document{}, fmt.Errorf("browser scrape %s: %w", url, err)
	}

	return models.Document{
		URL:     url,
		Content: StripTags(html),
	}, nil
}

// navigateDOMContentLoaded navigates like chromedp.Navigate but returns once
// the document is parsed instead of waiting for the load event.
func navigateDOMContentLoaded(url string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		parsed := make(chan struct{}, 1)

		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev any) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				select {
				case parsed <- struct{}{}:
				default:
				}
			}
		})

		_, _, errorText, _, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return fmt.Errorf("page load error %s", errorText)
		}

		select {
		case <-parsed:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
