package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"github.com/xhad/f1gpt/internal/models"
)

// ErrUnsupportedMetric is returned when a backend cannot rank by the
// requested similarity metric.
var ErrUnsupportedMetric = errors.New("unsupported similarity metric")

type ChromemConfig struct {
	Path     string // empty keeps the database in memory
	Compress bool
}

// ChromemStore is an embedded store. Vectors are normalized on insert, so
// cosine and dot product rank the same way.
type ChromemStore struct {
	db *chromem.DB
}

func NewChromemStore(config ChromemConfig) (*ChromemStore, error) {
	if config.Path == "" {
		return &ChromemStore{db: chromem.NewDB()}, nil
	}

	db, err := chromem.NewPersistentDB(config.Path, config.Compress)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromem database: %w", err)
	}
	return &ChromemStore{db: db}, nil
}

// precomputed refuses to embed; every record arrives with its vector.
func precomputed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("chromem store: records must carry an embedding")
}

func (s *ChromemStore) CreateCollection(ctx context.Context, spec models.CollectionSpec) error {
	switch spec.Metric {
	case models.Cosine, models.DotProduct:
	default:
		return fmt.Errorf("%w: chromem ranks by cosine only, got %q", ErrUnsupportedMetric, spec.Metric)
	}

	metadata := map[string]string{
		"dimension": strconv.Itoa(spec.Dimension),
		"metric":    string(spec.Metric),
	}
	if _, err := s.db.GetOrCreateCollection(spec.Name, metadata, precomputed); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", spec.Name, err)
	}
	return nil
}

func (s *ChromemStore) Insert(ctx context.Context, collection string, record models.Record) (string, error) {
	c := s.db.GetCollection(collection, precomputed)
	if c == nil {
		return "", fmt.Errorf("collection %s does not exist", collection)
	}

	id := uuid.NewString()
	err := c.AddDocument(ctx, chromem.Document{
		ID:        id,
		Embedding: record.Vector,
		Content:   record.Text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Count returns the number of records in collection, or 0 if it does not exist.
func (s *ChromemStore) Count(collection string) int {
	c := s.db.GetCollection(collection, precomputed)
	if c == nil {
		return 0
	}
	return c.Count()
}

func (s *ChromemStore) Close() {}
