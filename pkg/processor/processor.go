package processor

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
	"github.com/xhad/f1gpt/internal/models"
)

type ProcessorConfig struct {
	ChunkSize    int
	ChunkOverlap int // 0 means chunks do not overlap
	Separators   []string
}

const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 100
)

// Processor splits scraped documents into overlapping chunks.
type Processor struct {
	config   ProcessorConfig
	splitter textsplitter.RecursiveCharacter
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if len(config.Separators) == 0 {
		config.Separators = []string{"\n\n", "\n", " ", ""}
	}

	return Processor{
		config: config,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(config.ChunkSize),
			textsplitter.WithChunkOverlap(config.ChunkOverlap),
			textsplitter.WithSeparators(config.Separators),
		),
	}
}

func New() Processor {
	return NewWithConfig(ProcessorConfig{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
	})
}

func (p *Processor) Process(docs []models.Document) ([]models.ProcessedDocument, error) {
	processed := make([]models.ProcessedDocument, 0, len(docs))

	for _, doc := range docs {
		chunks, err := p.Split(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split %s: %w", doc.URL, err)
		}

		processed = append(processed, models.ProcessedDocument{
			Document: doc,
			Chunks:   chunks,
		})
	}

	return processed, nil
}

// Split returns the chunks of text in document order. Whitespace that falls
// on a chunk boundary is dropped; every other character is kept.
func (p *Processor) Split(text string) ([]string, error) {
	return p.splitter.SplitText(text)
}
