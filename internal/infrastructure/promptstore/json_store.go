package promptstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/jhoicas/categorizador-gpc/internal/domain"
)

// Store mapa inmutable nombre → plantilla, cargado una vez al arrancar.
type Store struct {
	prompts map[string]string
}

// New construye un Store a partir de un mapa (se copia).
func New(prompts map[string]string) *Store {
	m := make(map[string]string, len(prompts))
	for k, v := range prompts {
		m[k] = v
	}
	return &Store{prompts: m}
}

// Load lee el JSON de prompts desde path. Ante archivo ausente o JSON inválido
// devuelve un Store vacío junto a un error que envuelve domain.ErrConfig, para que
// el llamador registre la advertencia y siga en modo degradado.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(nil), fmt.Errorf("%w: archivo de prompts no encontrado en %s", domain.ErrConfig, path)
		}
		return New(nil), fmt.Errorf("%w: leer %s: %v", domain.ErrConfig, path, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(raw, &prompts); err != nil {
		return New(nil), fmt.Errorf("%w: %s no es un JSON válido: %v", domain.ErrConfig, path, err)
	}
	return New(prompts), nil
}

// Get devuelve la plantilla y si existe.
func (s *Store) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.prompts[key]
	return v, ok
}

// Len número de plantillas cargadas.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.prompts)
}

// Keys nombres de las plantillas en orden alfabético.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.prompts))
	for k := range s.prompts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
