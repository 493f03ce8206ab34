package ingest

import "errors"

var (
	ErrProvision         = errors.New("collection provisioning failed")
	ErrScrape            = errors.New("scrape failed")
	ErrSplit             = errors.New("split failed")
	ErrEmbed             = errors.New("embedding failed")
	ErrInsert            = errors.New("insert failed")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	ErrNilScraper   = errors.New("scraper is required")
	ErrNilProcessor = errors.New("processor is required")
	ErrNilEmbedder  = errors.New("embedder is required")
	ErrNilStore     = errors.New("vector store is required")
)
