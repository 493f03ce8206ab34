package types

import (
	"context"

	"github.com/xhad/f1gpt/internal/models"
)

// Core interfaces
type Scraper interface {
	Scrape(ctx context.Context, url string) (models.Document, error)
}

type Processor interface {
	Process(docs []models.Document) ([]models.ProcessedDocument, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type VectorStore interface {
	CreateCollection(ctx context.Context, spec models.CollectionSpec) error
	Insert(ctx context.Context, collection string, record models.Record) (string, error)
	Close()
}
