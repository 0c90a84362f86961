// Package textfold elimina tildes y diacríticos ("Señal" → "Senal").
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ASCII descompone el texto (NFD), quita las marcas combinantes y recompone (NFC).
// Caracteres sin equivalente sin tilde se conservan.
func ASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Key forma normalizada para comparar etiquetas: sin tildes, minúsculas y sin espacios sobrantes.
func Key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(ASCII(s)), " "))
}
