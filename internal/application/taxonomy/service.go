package taxonomy

import (
	"context"
	"fmt"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
	"github.com/jhoicas/categorizador-gpc/pkg/metrics"
	"github.com/jhoicas/categorizador-gpc/pkg/textfold"
)

// Status estado de una lectura de la taxonomía.
type Status string

const (
	StatusComplete Status = "complete"
	StatusEmpty    Status = "empty"
	StatusFailed   Status = "failed"
)

// Result resultado tipado de Fetch. Con StatusFailed, Records puede contener lo
// leído antes del fallo; el llamador decide si lo usa.
type Result struct {
	Records []*entity.SegmentRecord
	Status  Status
	Skipped int // filas descartadas por no tener etiqueta
	Err     error
}

// Labels etiquetas de los registros en el orden leído.
func (r Result) Labels() []string {
	labels := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		labels = append(labels, rec.Label)
	}
	return labels
}

// Contains indica si text coincide con alguna etiqueta, ignorando mayúsculas, tildes y espacios.
func (r Result) Contains(text string) bool {
	key := textfold.Key(text)
	if key == "" {
		return false
	}
	for _, rec := range r.Records {
		if textfold.Key(rec.Label) == key {
			return true
		}
	}
	return false
}

// Service lee la colección de segmentos GPC.
type Service struct {
	repo       repository.SegmentRepository
	collection string
	log        *logger.Logger
}

// NewService construye el servicio sobre la colección indicada.
func NewService(repo repository.SegmentRepository, collection string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, collection: collection, log: log}
}

// Collection nombre de la colección leída.
func (s *Service) Collection() string { return s.collection }

// Fetch lee todas las filas. Nunca devuelve error: los fallos quedan en Result.Err
// con StatusFailed. Las filas sin etiqueta se descartan y se registran.
func (s *Service) Fetch(ctx context.Context) Result {
	rows, err := s.repo.ListAll(ctx, s.collection)

	res := Result{Records: make([]*entity.SegmentRecord, 0, len(rows))}
	for _, row := range rows {
		if !row.HasLabel() {
			res.Skipped++
			s.log.Warn().
				Str("collection", s.collection).
				Str("partition_key", rowPartition(row)).
				Str("row_key", rowKey(row)).
				Msg("segmento sin etiqueta; se excluye del prompt")
			continue
		}
		res.Records = append(res.Records, row)
	}

	switch {
	case err != nil:
		res.Status = StatusFailed
		res.Err = fmt.Errorf("leer taxonomía %s: %w", s.collection, err)
		s.log.Error().Err(err).
			Str("collection", s.collection).
			Int("partial", len(res.Records)).
			Msg("error consultando la taxonomía")
	case len(res.Records) == 0:
		res.Status = StatusEmpty
		s.log.Warn().Str("collection", s.collection).Msg("taxonomía vacía")
	default:
		res.Status = StatusComplete
		s.log.Debug().
			Str("collection", s.collection).
			Int("total", len(res.Records)).
			Msg("entidades encontradas")
	}
	metrics.TaxonomyFetches.WithLabelValues(string(res.Status)).Inc()
	return res
}

func rowPartition(r *entity.SegmentRecord) string {
	if r == nil {
		return ""
	}
	return r.PartitionKey
}

func rowKey(r *entity.SegmentRecord) string {
	if r == nil {
		return ""
	}
	return r.RowKey
}
