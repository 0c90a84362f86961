// Package prompt renderiza plantillas de prompt con marcadores al estilo
// str.format: {nombre} para valores con nombre, {} o {0}, {1} para posicionales.
// {{ y }} producen llaves literales.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
)

// Claves conocidas en el archivo de prompts.
const (
	KeyDescribe = "generate_product_description_prompt"
	KeyClassify = "gpc_categorization_segment"

	// FieldUserInput marcador con la descripción introducida por el usuario.
	FieldUserInput = "user_input"
)

// Render sustituye los marcadores de tmpl. Un marcador sin valor, llaves sin cerrar
// o mezclar numeración automática y manual devuelven domain.ErrValidation.
func Render(tmpl string, named map[string]string, positional ...string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	auto, manual := false, false
	next := 0

	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		switch ch {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", domain.Validation(fmt.Sprintf("llave '{' sin cerrar en la posición %d", i))
			}
			field := tmpl[i+1 : i+1+end]
			i += end + 1

			if strings.ContainsAny(field, "{:!") {
				return "", domain.Validation(fmt.Sprintf("marcador no soportado {%s}", field))
			}

			switch {
			case field == "":
				if manual {
					return "", domain.Validation("no se puede mezclar numeración automática y manual")
				}
				auto = true
				if next >= len(positional) {
					return "", domain.Validation(fmt.Sprintf("falta el argumento posicional %d", next))
				}
				sb.WriteString(positional[next])
				next++
			case isIndex(field):
				if auto {
					return "", domain.Validation("no se puede mezclar numeración automática y manual")
				}
				manual = true
				idx, _ := strconv.Atoi(field)
				if idx >= len(positional) {
					return "", domain.Validation(fmt.Sprintf("falta el argumento posicional %d", idx))
				}
				sb.WriteString(positional[idx])
			default:
				v, ok := named[field]
				if !ok {
					return "", domain.Validation(fmt.Sprintf("marcador {%s} sin valor", field))
				}
				sb.WriteString(v)
			}
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", domain.Validation(fmt.Sprintf("llave '}' sin abrir en la posición %d", i))
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String(), nil
}

func isIndex(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// BulletList une los elementos con "\n- " como hace el prompt de clasificación.
func BulletList(items []string) string {
	return strings.Join(items, "\n- ")
}
