// Package memory almacén de taxonomía en proceso, para desarrollo local y tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
)

var _ repository.SegmentRepository = (*SegmentRepository)(nil)

type rowID struct {
	partition string
	row       string
}

// SegmentRepository colecciones en memoria indexadas por PartitionKey + RowKey.
type SegmentRepository struct {
	mu          sync.RWMutex
	collections map[string]map[rowID]*entity.SegmentRecord
}

// NewSegmentRepository construye un almacén vacío.
func NewSegmentRepository() *SegmentRepository {
	return &SegmentRepository{collections: make(map[string]map[rowID]*entity.SegmentRecord)}
}

// ListAll devuelve copias de las filas ordenadas por PartitionKey y RowKey,
// el mismo orden en que las devuelve Azure Table Storage.
func (r *SegmentRepository) ListAll(ctx context.Context, collection string) ([]*entity.SegmentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.collections[collection]
	out := make([]*entity.SegmentRecord, 0, len(rows))
	for _, rec := range rows {
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartitionKey != out[j].PartitionKey {
			return out[i].PartitionKey < out[j].PartitionKey
		}
		return out[i].RowKey < out[j].RowKey
	})
	return out, nil
}

// Upsert reemplaza la fila completa si ya existe.
func (r *SegmentRepository) Upsert(ctx context.Context, collection string, record *entity.SegmentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, ok := r.collections[collection]
	if !ok {
		rows = make(map[rowID]*entity.SegmentRecord)
		r.collections[collection] = rows
	}
	rows[rowID{partition: record.PartitionKey, row: record.RowKey}] = clone(record)
	return nil
}

func clone(rec *entity.SegmentRecord) *entity.SegmentRecord {
	c := *rec
	if rec.Extra != nil {
		c.Extra = make(map[string]any, len(rec.Extra))
		for k, v := range rec.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}
