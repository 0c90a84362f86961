// Comando segments_loader: carga la taxonomía de segmentos GPC desde un CSV al almacén configurado.
//
//	go run ./cmd/segments_loader --file data/segmentos.csv
//	go run ./cmd/segments_loader --file gpc.csv --backend postgres --ascii
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jhoicas/categorizador-gpc/internal/application/taxonomy"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/csvsource"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/taxonomystore"
	"github.com/jhoicas/categorizador-gpc/pkg/config"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
)

type loaderFlags struct {
	file        string
	table       string
	delimiter   string
	encoding    string
	labelField  string
	rowKeyField string
	partition   string
	ascii       bool
	backend     string
	createTable bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &loaderFlags{}
	cmd := &cobra.Command{
		Use:   "segments_loader",
		Short: "Carga los segmentos GPC de un CSV en el almacén de taxonomía",
		Long: `Lee un CSV (por defecto separado por ';' y codificado en latin-1) y hace upsert
de cada fila en la tabla de segmentos. Un fallo en una fila no detiene la carga;
al final se imprime el resumen y el comando termina con error si alguna fila falló.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "data/segmentos.csv", "ruta del CSV de segmentos")
	fl.StringVar(&f.table, "table", "", "tabla destino (por defecto TAXONOMY_TABLE o GPCsegments)")
	fl.StringVar(&f.delimiter, "delimiter", ";", "separador de columnas")
	fl.StringVar(&f.encoding, "encoding", string(csvsource.Latin1), "codificación del archivo: latin-1 o utf-8")
	fl.StringVar(&f.labelField, "label-field", "", "columna con el nombre del segmento (por defecto TAXONOMY_LABEL_FIELD o Segmento)")
	fl.StringVar(&f.rowKeyField, "row-key-field", "RowKey", "columna que se usa como RowKey")
	fl.StringVar(&f.partition, "partition", "", "PartitionKey fija para todas las filas")
	fl.BoolVar(&f.ascii, "ascii", false, "quitar tildes de los valores antes de cargarlos")
	fl.StringVar(&f.backend, "backend", "", "almacén destino: azure, postgres o memory (por defecto TAXONOMY_BACKEND)")
	fl.BoolVar(&f.createTable, "create-table", false, "crear la tabla si no existe (azure)")
	return cmd
}

func runLoad(cmd *cobra.Command, f *loaderFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Child("segments_loader")

	tax := cfg.Taxonomy
	if f.backend != "" {
		tax.Backend = f.backend
	}
	if f.table != "" {
		tax.Table = f.table
	}
	if f.labelField != "" {
		tax.LabelField = f.labelField
	}

	delim, size := utf8.DecodeRuneInString(f.delimiter)
	if size == 0 || size != len(f.delimiter) {
		return fmt.Errorf("--delimiter debe ser un único carácter, se recibió %q", f.delimiter)
	}

	records, err := csvsource.ReadFile(f.file, csvsource.Options{
		Delimiter:    delim,
		Encoding:     csvsource.Encoding(f.encoding),
		LabelField:   tax.LabelField,
		RowKeyField:  f.rowKeyField,
		PartitionKey: f.partition,
		FoldASCII:    f.ascii,
	})
	if err != nil {
		return fmt.Errorf("leer %s: %w", f.file, err)
	}
	log.Info().Str("file", f.file).Int("rows", len(records)).Msg("CSV leído")

	ctx := cmd.Context()
	store, err := taxonomystore.Open(ctx, tax, cfg.DB)
	if err != nil {
		return fmt.Errorf("abrir almacén %s: %w", tax.Backend, err)
	}
	defer store.Close()

	if f.createTable {
		if err := store.EnsureCollection(ctx, tax.Table); err != nil {
			return fmt.Errorf("crear tabla %s: %w", tax.Table, err)
		}
	}

	report := taxonomy.NewLoader(store.Repo, log).UpsertAll(ctx, tax.Table, records)

	cmd.Printf("Tabla %s (%s): %d de %d filas cargadas\n", tax.Table, store.Backend, report.Upserted, report.Total)
	for _, fail := range report.Failures {
		cmd.Printf("  error %s/%s: %v\n", fail.PartitionKey, fail.RowKey, fail.Err)
	}
	if len(report.Failures) > 0 {
		return errors.New("la carga terminó con filas fallidas")
	}
	return nil
}
