package ingest

import (
	"context"
	"fmt"

	"github.com/xhad/f1gpt/internal/models"
	"github.com/xhad/f1gpt/internal/types"
)

type PipelineConfig struct {
	Collection models.CollectionSpec
	URLs       []string

	// OnPageStart is called before a page is scraped.
	OnPageStart func(url string)
	// OnPageScraped is called after a page is split, before its chunks are embedded.
	OnPageScraped func(url string, chunks int)
	// OnChunkStored is called after each successful insert.
	OnChunkStored func(url string, index int, id string)
}

// Stats counts what a run wrote before it finished or aborted.
type Stats struct {
	Pages   int
	Chunks  int
	Records int
}

// Pipeline loads pages into a vector collection one chunk at a time. Nothing
// runs concurrently, and the first error ends the run without undoing the
// inserts already made.
type Pipeline struct {
	config    PipelineConfig
	scraper   types.Scraper
	processor types.Processor
	embedder  types.Embedder
	store     types.VectorStore
}

func NewWithConfig(config PipelineConfig, scraper types.Scraper, processor types.Processor, embedder types.Embedder, store types.VectorStore) (*Pipeline, error) {
	switch {
	case scraper == nil:
		return nil, ErrNilScraper
	case processor == nil:
		return nil, ErrNilProcessor
	case embedder == nil:
		return nil, ErrNilEmbedder
	case store == nil:
		return nil, ErrNilStore
	}

	if config.Collection.Dimension == 0 {
		config.Collection.Dimension = models.EmbeddingDimension
	}
	if config.Collection.Metric == "" {
		config.Collection.Metric = models.DotProduct
	}
	if len(config.URLs) == 0 {
		config.URLs = DefaultSources
	}

	return &Pipeline{
		config:    config,
		scraper:   scraper,
		processor: processor,
		embedder:  embedder,
		store:     store,
	}, nil
}

// Provision creates the target collection.
func (p *Pipeline) Provision(ctx context.Context) error {
	if err := p.store.CreateCollection(ctx, p.config.Collection); err != nil {
		return fmt.Errorf("%w: %w", ErrProvision, err)
	}
	return nil
}

// Load scrapes, splits, embeds and inserts every configured URL in order.
func (p *Pipeline) Load(ctx context.Context) (Stats, error) {
	var stats Stats

	for _, url := range p.config.URLs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if p.config.OnPageStart != nil {
			p.config.OnPageStart(url)
		}

		doc, err := p.scraper.Scrape(ctx, url)
		if err != nil {
			return stats, fmt.Errorf("%w: %s: %w", ErrScrape, url, err)
		}

		processed, err := p.processor.Process([]models.Document{doc})
		if err != nil {
			return stats, fmt.Errorf("%w: %s: %w", ErrSplit, url, err)
		}
		var chunks []string
		if len(processed) > 0 {
			chunks = processed[0].Chunks
		}
		stats.Pages++
		stats.Chunks += len(chunks)

		if p.config.OnPageScraped != nil {
			p.config.OnPageScraped(url, len(chunks))
		}

		for i, chunk := range chunks {
			id, err := p.storeChunk(ctx, chunk)
			if err != nil {
				return stats, fmt.Errorf("%s chunk %d: %w", url, i, err)
			}
			stats.Records++

			if p.config.OnChunkStored != nil {
				p.config.OnChunkStored(url, i, id)
			}
		}
	}

	return stats, nil
}

func (p *Pipeline) storeChunk(ctx context.Context, chunk string) (string, error) {
	vector, err := p.embedder.Embed(ctx, chunk)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEmbed, err)
	}
	if len(vector) != p.config.Collection.Dimension {
		return "", fmt.Errorf("%w: got %d, collection expects %d",
			ErrDimensionMismatch, len(vector), p.config.Collection.Dimension)
	}

	id, err := p.store.Insert(ctx, p.config.Collection.Name, models.Record{
		Vector: vector,
		Text:   chunk,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInsert, err)
	}
	return id, nil
}

// Run provisions the collection, then loads every URL.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	if err := p.Provision(ctx); err != nil {
		return Stats{}, err
	}
	return p.Load(ctx)
}
