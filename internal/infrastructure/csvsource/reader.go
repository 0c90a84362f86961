// Package csvsource lee el CSV de segmentos GPC (separado por ';', codificado en latin-1)
// y lo convierte en registros de taxonomía.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/pkg/textfold"
)

// Encoding codificación del archivo de entrada.
type Encoding string

const (
	Latin1 Encoding = "latin-1"
	UTF8   Encoding = "utf-8"
)

// Options parámetros de lectura.
type Options struct {
	Delimiter    rune     // por defecto ';'
	Encoding     Encoding // por defecto latin-1
	LabelField   string   // por defecto "Segmento"
	RowKeyField  string   // por defecto "RowKey"
	PartitionKey string   // si no está vacío, sustituye a la columna PartitionKey
	FoldASCII    bool     // quitar tildes de todas las columnas de texto
}

func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ';'
	}
	if o.Encoding == "" {
		o.Encoding = Latin1
	}
	if o.LabelField == "" {
		o.LabelField = entity.DefaultLabelField
	}
	if o.RowKeyField == "" {
		o.RowKeyField = "RowKey"
	}
	return o
}

// ReadFile abre path y delega en Read.
func ReadFile(path string, opts Options) ([]*entity.SegmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read convierte cada fila en un SegmentRecord. La primera fila es la cabecera.
// RowKey siempre se conserva como texto; las celdas vacías no se copian a Extra.
func Read(r io.Reader, opts Options) ([]*entity.SegmentRecord, error) {
	opts = opts.withDefaults()

	switch opts.Encoding {
	case Latin1:
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case UTF8:
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", opts.Encoding)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("CSV vacío: falta la cabecera")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	if _, ok := idx[opts.RowKeyField]; !ok {
		return nil, fmt.Errorf("falta la columna %s", opts.RowKeyField)
	}
	if _, ok := idx["PartitionKey"]; !ok && opts.PartitionKey == "" {
		return nil, errors.New("falta la columna PartitionKey y no se indicó una partición fija")
	}

	var out []*entity.SegmentRecord
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return out, fmt.Errorf("línea %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		rec := &entity.SegmentRecord{Extra: make(map[string]any)}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			val := strings.TrimSpace(row[i])
			if opts.FoldASCII {
				val = textfold.ASCII(val)
			}
			switch col {
			case "PartitionKey":
				rec.PartitionKey = val
			case opts.RowKeyField:
				rec.RowKey = val
			case opts.LabelField:
				rec.Label = val
			default:
				if val != "" {
					rec.Extra[col] = val
				}
			}
		}
		if opts.PartitionKey != "" {
			rec.PartitionKey = opts.PartitionKey
		}
		out = append(out, rec)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
