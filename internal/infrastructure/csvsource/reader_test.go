package csvsource_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/csvsource"
)

// latin-1: 0xED = í, 0xE9 = é
const latin1CSV = "PartitionKey;RowKey;Segmento;Codigo\n" +
	"Segmentos;50000000;Alimentos/Bebidas/Tabaco;50000000\n" +
	"Segmentos;64000000;Art\xedculos de papeler\xeda;\n" +
	";;;\n" +
	"Segmentos;78000000;El\xe9ctricos;78000000\n"

func TestRead_Latin1PuntoYComa(t *testing.T) {
	recs, err := csvsource.Read(strings.NewReader(latin1CSV), csvsource.Options{})
	require.NoError(t, err)
	require.Len(t, recs, 3, "la fila en blanco se ignora")

	assert.Equal(t, "Segmentos", recs[0].PartitionKey)
	assert.Equal(t, "50000000", recs[0].RowKey, "RowKey se conserva como texto")
	assert.Equal(t, "Alimentos/Bebidas/Tabaco", recs[0].Label)
	assert.Equal(t, "50000000", recs[0].Extra["Codigo"])

	assert.Equal(t, "Artículos de papelería", recs[1].Label, "latin-1 se decodifica a UTF-8")
	_, hasCodigo := recs[1].Extra["Codigo"]
	assert.False(t, hasCodigo, "las celdas vacías no se copian")

	assert.Equal(t, "Eléctricos", recs[2].Label)
}

func TestRead_FoldASCII(t *testing.T) {
	recs, err := csvsource.Read(strings.NewReader(latin1CSV), csvsource.Options{FoldASCII: true})
	require.NoError(t, err)
	assert.Equal(t, "Articulos de papeleria", recs[1].Label)
	assert.Equal(t, "Electricos", recs[2].Label)
}

func TestRead_ParticionFija(t *testing.T) {
	in := "RowKey;Segmento\n1;Juguetes/Juegos\n"
	recs, err := csvsource.Read(strings.NewReader(in), csvsource.Options{PartitionKey: "Segmentos", Encoding: csvsource.UTF8})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Segmentos", recs[0].PartitionKey)
	assert.Equal(t, "Juguetes/Juegos", recs[0].Label)
}

func TestRead_OtrasColumnas(t *testing.T) {
	in := "PartitionKey,segment_id,Nombre\nS,10000000,Mascotas\n"
	recs, err := csvsource.Read(strings.NewReader(in), csvsource.Options{
		Delimiter:   ',',
		Encoding:    csvsource.UTF8,
		RowKeyField: "segment_id",
		LabelField:  "Nombre",
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "10000000", recs[0].RowKey)
	assert.Equal(t, "Mascotas", recs[0].Label)
}

func TestRead_Errores(t *testing.T) {
	_, err := csvsource.Read(strings.NewReader(""), csvsource.Options{})
	assert.Error(t, err, "CSV vacío")

	_, err = csvsource.Read(strings.NewReader("PartitionKey;Segmento\nS;A\n"), csvsource.Options{})
	assert.Error(t, err, "sin columna RowKey")

	_, err = csvsource.Read(strings.NewReader("RowKey;Segmento\n1;A\n"), csvsource.Options{})
	assert.Error(t, err, "sin PartitionKey ni partición fija")

	_, err = csvsource.Read(strings.NewReader("RowKey\n1\n"), csvsource.Options{Encoding: "utf-16"})
	assert.Error(t, err, "codificación no soportada")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segmentos.csv")
	require.NoError(t, os.WriteFile(path, []byte(latin1CSV), 0o600))

	recs, err := csvsource.ReadFile(path, csvsource.Options{})
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	_, err = csvsource.ReadFile(filepath.Join(t.TempDir(), "no-existe.csv"), csvsource.Options{})
	assert.Error(t, err)
}
