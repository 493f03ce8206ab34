package main

import (
	"context"
	"fmt"

	"github.com/xhad/f1gpt/internal/types"
	cfgPkg "github.com/xhad/f1gpt/pkg/config"
	"github.com/xhad/f1gpt/pkg/llm"
	"github.com/xhad/f1gpt/pkg/processor"
	"github.com/xhad/f1gpt/pkg/scraper"
	"github.com/xhad/f1gpt/pkg/store"
)

func newScraper(config *cfgPkg.Config) types.Scraper {
	if config.Scraper.Mode == cfgPkg.ScraperHTTP {
		return scraper.NewWithConfig(scraper.ScraperConfig{
			Timeout:   config.Scraper.Timeout,
			UserAgent: config.Scraper.UserAgent,
		})
	}

	return scraper.NewBrowser(scraper.BrowserConfig{
		Timeout:   config.Scraper.Timeout,
		UserAgent: config.Scraper.UserAgent,
		ExecPath:  config.Scraper.ExecPath,
	})
}

func newProcessor(config *cfgPkg.Config) processor.Processor {
	overlap := processor.DefaultChunkOverlap
	if config.Processor.ChunkOverlap != nil {
		overlap = *config.Processor.ChunkOverlap
	}

	return processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    config.Processor.ChunkSize,
		ChunkOverlap: overlap,
	})
}

func newEmbedder(config *cfgPkg.Config) (types.Embedder, error) {
	baseURL := config.Embedding.BaseURL
	if config.Embedding.Provider == cfgPkg.ProviderOllama {
		baseURL = config.Embedding.OllamaBaseURL
	}

	return llm.NewEmbedder(llm.EmbedderConfig{
		Provider: config.Embedding.Provider,
		Model:    config.Embedding.Model,
		APIKey:   config.Embedding.APIKey,
		BaseURL:  baseURL,
	})
}

func newStore(ctx context.Context, config *cfgPkg.Config) (types.VectorStore, error) {
	switch config.Store.Backend {
	case cfgPkg.StoreAstra:
		return store.NewAstraStore(store.AstraConfig{
			Endpoint:  config.Astra.Endpoint,
			Namespace: config.Astra.Namespace,
			Token:     config.Astra.Token,
		})
	case cfgPkg.StorePgVector:
		return store.NewPgVectorStore(ctx, store.PgVectorConfig{
			ConnString: config.Postgres.URL,
			Lists:      config.Postgres.Lists,
		})
	case cfgPkg.StoreChromem:
		return store.NewChromemStore(store.ChromemConfig{
			Path:     config.Chromem.Path,
			Compress: config.Chromem.Compress,
		})
	default:
		return nil, fmt.Errorf("unknown vector store backend %q", config.Store.Backend)
	}
}
