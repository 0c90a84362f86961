package postgres

import (
	"context"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
)

var _ repository.SegmentRepository = (*SegmentRepo)(nil)

// SchemaSQL tabla de taxonomía; una fila por (collection, partition_key, row_key).
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS taxonomy_segments (
	collection    TEXT  NOT NULL,
	partition_key TEXT  NOT NULL,
	row_key       TEXT  NOT NULL,
	label         TEXT  NOT NULL DEFAULT '',
	extra         JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, partition_key, row_key)
)`

// SegmentRepo implementación del puerto SegmentRepository sobre PostgreSQL (usable con pool o tx).
type SegmentRepo struct {
	q Querier
}

// NewSegmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSegmentRepository(q Querier) *SegmentRepo {
	return &SegmentRepo{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (r *SegmentRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, SchemaSQL); err != nil {
		return classify("crear taxonomy_segments", err)
	}
	return nil
}

// ListAll lee la colección completa ordenada por partition_key, row_key.
func (r *SegmentRepo) ListAll(ctx context.Context, collection string) ([]*entity.SegmentRecord, error) {
	query := `
		SELECT partition_key, row_key, label, extra
		FROM taxonomy_segments
		WHERE collection = $1
		ORDER BY partition_key, row_key`
	rows, err := r.q.Query(ctx, query, collection)
	if err != nil {
		return nil, classify("list segments", err)
	}
	defer rows.Close()

	var list []*entity.SegmentRecord
	for rows.Next() {
		var s entity.SegmentRecord
		if err := rows.Scan(&s.PartitionKey, &s.RowKey, &s.Label, &s.Extra); err != nil {
			return list, classify("scan segment", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return list, classify("list segments", err)
	}
	return list, nil
}

// Upsert inserta o reemplaza la fila completa.
func (r *SegmentRepo) Upsert(ctx context.Context, collection string, record *entity.SegmentRecord) error {
	extra := record.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	query := `
		INSERT INTO taxonomy_segments (collection, partition_key, row_key, label, extra, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (collection, partition_key, row_key)
		DO UPDATE SET label = EXCLUDED.label, extra = EXCLUDED.extra, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, collection, record.PartitionKey, record.RowKey, record.Label, extra); err != nil {
		return classify("upsert segment", err)
	}
	return nil
}
