package config

import (
	"fmt"
	"net/url"

	"github.com/xhad/f1gpt/internal/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Store config
	switch c.Store.Backend {
	case StoreAstra, StorePgVector, StoreChromem:
	default:
		errors = append(errors, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("unknown backend %q", c.Store.Backend),
		})
	}

	if !models.SimilarityMetric(c.Store.Metric).Valid() {
		errors = append(errors, ValidationError{
			Field:   "store.metric",
			Message: "metric must be one of dot_product, cosine, euclidean",
		})
	}

	if c.Store.Backend == StoreAstra && c.Astra.Endpoint != "" && !isHTTPURL(c.Astra.Endpoint) {
		errors = append(errors, ValidationError{
			Field:   "astra.endpoint",
			Message: "invalid Data API endpoint",
		})
	}

	if c.Postgres.Lists < 0 {
		errors = append(errors, ValidationError{
			Field:   "postgres.lists",
			Message: "lists must not be negative",
		})
	}

	// Validate Embedding config
	switch c.Embedding.Provider {
	case ProviderOpenAI:
		if c.Embedding.BaseURL != "" && !isHTTPURL(c.Embedding.BaseURL) {
			errors = append(errors, ValidationError{
				Field:   "embedding.base_url",
				Message: "invalid OpenAI base URL",
			})
		}
	case ProviderOllama:
		if !isHTTPURL(c.Embedding.OllamaBaseURL) {
			errors = append(errors, ValidationError{
				Field:   "embedding.ollama_base_url",
				Message: "invalid Ollama base URL",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unknown provider %q", c.Embedding.Provider),
		})
	}

	if c.Embedding.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "embedding.model",
			Message: "model is required",
		})
	}

	// Validate Scraper config
	if c.Scraper.Mode != ScraperBrowser && c.Scraper.Mode != ScraperHTTP {
		errors = append(errors, ValidationError{
			Field:   "scraper.mode",
			Message: fmt.Sprintf("unknown mode %q", c.Scraper.Mode),
		})
	}

	if c.Scraper.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "scraper.timeout",
			Message: "timeout must not be negative",
		})
	}

	// Validate Processor config
	if c.Processor.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if overlap := c.Processor.ChunkOverlap; overlap == nil || *overlap < 0 || *overlap >= c.Processor.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	for _, src := range c.Sources {
		if !isHTTPURL(src) {
			errors = append(errors, ValidationError{
				Field:   "sources",
				Message: fmt.Sprintf("invalid source URL: %s", src),
			})
		}
	}

	return errors
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
