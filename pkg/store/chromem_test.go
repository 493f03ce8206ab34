package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/f1gpt/internal/models"
	"github.com/xhad/f1gpt/pkg/store"
)

func TestChromemStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewChromemStore(store.ChromemConfig{})
	require.NoError(t, err)
	defer s.Close()

	spec := models.CollectionSpec{Name: "f1gpt", Dimension: 3, Metric: models.DotProduct}
	require.NoError(t, s.CreateCollection(ctx, spec))
	require.NoError(t, s.CreateCollection(ctx, spec))

	first, err := s.Insert(ctx, "f1gpt", models.Record{Vector: []float32{3, 0, 4}, Text: "Silverstone"})
	require.NoError(t, err)
	second, err := s.Insert(ctx, "f1gpt", models.Record{Vector: []float32{3, 0, 4}, Text: "Silverstone"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, s.Count("f1gpt"))
	assert.Equal(t, 0, s.Count("missing"))
}

func TestChromemStoreRejectsEuclidean(t *testing.T) {
	s, err := store.NewChromemStore(store.ChromemConfig{})
	require.NoError(t, err)

	err = s.CreateCollection(context.Background(), models.CollectionSpec{Name: "f1gpt", Dimension: 3, Metric: models.Euclidean})
	assert.ErrorIs(t, err, store.ErrUnsupportedMetric)
}

func TestChromemStoreInsertWithoutCollection(t *testing.T) {
	s, err := store.NewChromemStore(store.ChromemConfig{})
	require.NoError(t, err)

	_, err = s.Insert(context.Background(), "nope", models.Record{Vector: []float32{1}, Text: "x"})
	assert.Error(t, err)
}

func TestChromemStorePersistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	spec := models.CollectionSpec{Name: "f1gpt", Dimension: 2, Metric: models.Cosine}

	s, err := store.NewChromemStore(store.ChromemConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.CreateCollection(ctx, spec))
	_, err = s.Insert(ctx, "f1gpt", models.Record{Vector: []float32{1, 1}, Text: "Spa"})
	require.NoError(t, err)

	reopened, err := store.NewChromemStore(store.ChromemConfig{Path: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Count("f1gpt"))
}
