package repository

import (
	"context"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
)

// SegmentRepository define el puerto de acceso a la tabla de taxonomía (DIP).
// Los errores de acceso deben envolver domain.ErrTableAuth o domain.ErrTableTransport.
type SegmentRepository interface {
	// ListAll recorre la colección completa sin filtro y materializa todas las filas.
	ListAll(ctx context.Context, collection string) ([]*entity.SegmentRecord, error)
	// Upsert inserta o reemplaza la fila identificada por PartitionKey + RowKey.
	Upsert(ctx context.Context, collection string, record *entity.SegmentRecord) error
}
