package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segmentos.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestLoader_MemoriaCargaTodo(t *testing.T) {
	path := writeCSV(t, "PartitionKey;RowKey;Segmento\n"+
		"Segmentos;50000000;Alimentos/Bebidas/Tabaco\n"+
		"Segmentos;86000000;Educaci\xf3n\n")

	out, err := runCmd(t, "--file", path, "--backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Tabla GPCsegments (memory): 2 de 2 filas cargadas")
}

func TestLoader_FilaSinClaveFalla(t *testing.T) {
	path := writeCSV(t, "RowKey,Nombre\n1,Mascotas\n,Juguetes\n")

	out, err := runCmd(t,
		"--file", path, "--backend", "memory", "--table", "Pruebas",
		"--delimiter", ",", "--encoding", "utf-8", "--label-field", "Nombre", "--partition", "Segmentos",
	)
	require.Error(t, err)
	assert.Contains(t, out, "Tabla Pruebas (memory): 1 de 2 filas cargadas")
	assert.Contains(t, out, "error Segmentos/")
}

func TestLoader_DelimitadorInvalido(t *testing.T) {
	path := writeCSV(t, "PartitionKey;RowKey;Segmento\n")

	_, err := runCmd(t, "--file", path, "--backend", "memory", "--delimiter", ";;")
	assert.Error(t, err)
}

func TestLoader_ArchivoInexistente(t *testing.T) {
	_, err := runCmd(t, "--file", filepath.Join(t.TempDir(), "nada.csv"), "--backend", "memory")
	assert.Error(t, err)
}
