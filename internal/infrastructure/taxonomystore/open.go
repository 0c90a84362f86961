// Package taxonomystore selecciona el almacén de la taxonomía según TAXONOMY_BACKEND.
package taxonomystore

import (
	"context"
	"fmt"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/azuretable"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/memory"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/postgres"
	"github.com/jhoicas/categorizador-gpc/pkg/config"
)

// TableCreator lo implementan los backends que pueden crear la colección bajo demanda.
type TableCreator interface {
	CreateTable(ctx context.Context, collection string) error
}

// Store repositorio abierto más su función de cierre.
type Store struct {
	Repo    repository.SegmentRepository
	Backend string
	close   func()
}

// Close libera las conexiones del backend (no-op para memory y azure).
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// EnsureCollection crea la colección si el backend lo soporta.
func (s *Store) EnsureCollection(ctx context.Context, collection string) error {
	if tc, ok := s.Repo.(TableCreator); ok {
		return tc.CreateTable(ctx, collection)
	}
	return nil
}

// Open construye el repositorio del backend configurado. Para postgres crea el esquema si falta.
func Open(ctx context.Context, tax config.TaxonomyConfig, db config.DBConfig) (*Store, error) {
	switch tax.Backend {
	case config.BackendAzure:
		repo, err := azuretable.NewSegmentRepository(tax.ConnectionString, tax.LabelField)
		if err != nil {
			return nil, err
		}
		return &Store{Repo: repo, Backend: tax.Backend}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewSegmentRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{Repo: repo, Backend: tax.Backend, close: pool.Close}, nil

	case config.BackendMemory:
		return &Store{Repo: memory.NewSegmentRepository(), Backend: tax.Backend}, nil

	default:
		return nil, fmt.Errorf("%w: backend de taxonomía desconocido %q", domain.ErrConfig, tax.Backend)
	}
}
