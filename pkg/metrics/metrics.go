// Package metrics contadores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationCalls llamadas a la API de generación por operación y resultado.
	GenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpc_generation_calls_total",
			Help: "Total de llamadas a la API de generación por operación y resultado.",
		},
		[]string{"operation", "outcome"},
	)

	// TaxonomyFetches lecturas de la tabla de taxonomía por estado del resultado.
	TaxonomyFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gpc_taxonomy_fetches_total",
			Help: "Total de lecturas de la taxonomía por estado (complete, empty, failed).",
		},
		[]string{"status"},
	)

	// SegmentsOutsideTaxonomy respuestas de clasificación que no coinciden con ningún segmento enviado.
	SegmentsOutsideTaxonomy = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gpc_segments_outside_taxonomy_total",
		Help: "Total de segmentos asignados por el modelo que no están en la taxonomía.",
	})
)
