package taxonomystore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/taxonomystore"
	"github.com/jhoicas/categorizador-gpc/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	store, err := taxonomystore.Open(ctx, config.TaxonomyConfig{Backend: config.BackendMemory}, config.DBConfig{})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureCollection(ctx, "GPCsegments"), "memory no necesita crear la colección")
	require.NoError(t, store.Repo.Upsert(ctx, "GPCsegments", &entity.SegmentRecord{PartitionKey: "S", RowKey: "1", Label: "A"}))

	recs, err := store.Repo.ListAll(ctx, "GPCsegments")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestOpen_AzureSinCadena(t *testing.T) {
	_, err := taxonomystore.Open(context.Background(), config.TaxonomyConfig{Backend: config.BackendAzure}, config.DBConfig{})
	assert.True(t, errors.Is(err, domain.ErrConfig))
}

func TestOpen_BackendDesconocido(t *testing.T) {
	_, err := taxonomystore.Open(context.Background(), config.TaxonomyConfig{Backend: "redis"}, config.DBConfig{})
	assert.True(t, errors.Is(err, domain.ErrConfig))
}
