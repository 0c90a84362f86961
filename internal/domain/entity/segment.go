package entity

import "strings"

// DefaultLabelField columna de la tabla que contiene el nombre del segmento GPC.
const DefaultLabelField = "Segmento"

// SegmentRecord fila de la taxonomía de segmentos GPC (GS1).
// PartitionKey + RowKey identifican la fila; Extra conserva el resto de columnas sin tocar.
type SegmentRecord struct {
	PartitionKey string
	RowKey       string
	Label        string
	Extra        map[string]any
}

// HasLabel indica si la fila es utilizable en un prompt de clasificación.
func (s *SegmentRecord) HasLabel() bool {
	return s != nil && strings.TrimSpace(s.Label) != ""
}
