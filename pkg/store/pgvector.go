package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/xhad/f1gpt/internal/models"
)

type PgVectorConfig struct {
	ConnString string
	Lists      int // ivfflat lists
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PgVectorStore keeps each collection in its own table with a pgvector column.
type PgVectorStore struct {
	config PgVectorConfig
	pool   *pgxpool.Pool
	db     execer
}

func NewPgVectorStore(ctx context.Context, config PgVectorConfig) (*PgVectorStore, error) {
	if config.Lists == 0 {
		config.Lists = 100
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PgVectorStore{
		config: config,
		pool:   pool,
		db:     pool,
	}, nil
}

// operatorClass maps a similarity metric to the ivfflat operator class that
// ranks by it.
func operatorClass(metric models.SimilarityMetric) (string, error) {
	switch metric {
	case models.DotProduct:
		return "vector_ip_ops", nil
	case models.Cosine:
		return "vector_cosine_ops", nil
	case models.Euclidean:
		return "vector_l2_ops", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
}

func (vs *PgVectorStore) CreateCollection(ctx context.Context, spec models.CollectionSpec) error {
	opclass, err := operatorClass(spec.Metric)
	if err != nil {
		return err
	}

	// Enable pgvector extension
	_, err = vs.db.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	table := pgx.Identifier{spec.Name}.Sanitize()

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table, spec.Dimension)

	_, err = vs.db.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s
		ON %s
		USING ivfflat (embedding %s)
		WITH (lists = %d)`,
		pgx.Identifier{spec.Name + "_embedding_idx"}.Sanitize(), table, opclass, vs.config.Lists)

	_, err = vs.db.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Insert always adds a new row; records are never merged.
func (vs *PgVectorStore) Insert(ctx context.Context, collection string, record models.Record) (string, error) {
	id := uuid.NewString()

	stmt := fmt.Sprintf(`INSERT INTO %s (id, text, embedding) VALUES ($1, $2, $3)`,
		pgx.Identifier{collection}.Sanitize())

	_, err := vs.db.Exec(ctx, stmt, id, sanitizeUTF8(record.Text), pgvector.NewVector(record.Vector))
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

func (vs *PgVectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

// sanitizeUTF8 drops invalid bytes; Postgres rejects them in TEXT columns.
func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
