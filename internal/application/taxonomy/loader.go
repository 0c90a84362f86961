package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/domain/repository"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
)

// RowFailure fallo al escribir una fila concreta.
type RowFailure struct {
	PartitionKey string
	RowKey       string
	Err          error
}

// LoadReport resumen de una carga masiva.
type LoadReport struct {
	Total    int
	Upserted int
	Failures []RowFailure
}

// Err une los fallos individuales, o nil si todas las filas se escribieron.
func (r LoadReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("fila %s/%s: %w", f.PartitionKey, f.RowKey, f.Err))
	}
	return errors.Join(errs...)
}

// Loader carga filas de taxonomía en el almacén (uso offline, no lo usa el servicio HTTP).
type Loader struct {
	repo repository.SegmentRepository
	log  *logger.Logger
}

// NewLoader construye el cargador.
func NewLoader(repo repository.SegmentRepository, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{repo: repo, log: log}
}

// UpsertAll hace upsert de cada registro en orden y continúa tras fallos individuales.
// Solo se detiene si ctx se cancela.
func (l *Loader) UpsertAll(ctx context.Context, collection string, records []*entity.SegmentRecord) LoadReport {
	report := LoadReport{Total: len(records)}
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			for _, rest := range records[i:] {
				report.Failures = append(report.Failures, failure(rest, err))
			}
			l.log.Error().Err(err).Int("pending", len(records)-i).Msg("carga interrumpida")
			break
		}
		if rec == nil || rec.PartitionKey == "" || rec.RowKey == "" {
			f := failure(rec, errors.New("PartitionKey y RowKey son obligatorios"))
			report.Failures = append(report.Failures, f)
			l.log.Error().Err(f.Err).Int("index", i).Msg("fila inválida")
			continue
		}
		if err := l.repo.Upsert(ctx, collection, rec); err != nil {
			report.Failures = append(report.Failures, failure(rec, err))
			l.log.Error().Err(err).
				Str("partition_key", rec.PartitionKey).
				Str("row_key", rec.RowKey).
				Msg("error al crear la entidad")
			continue
		}
		report.Upserted++
		l.log.Debug().
			Str("partition_key", rec.PartitionKey).
			Str("row_key", rec.RowKey).
			Str("label", rec.Label).
			Msg("entidad creada")
	}
	return report
}

func failure(rec *entity.SegmentRecord, err error) RowFailure {
	if rec == nil {
		return RowFailure{Err: err}
	}
	return RowFailure{PartitionKey: rec.PartitionKey, RowKey: rec.RowKey, Err: err}
}
