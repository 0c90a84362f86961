package textfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/categorizador-gpc/pkg/textfold"
)

func TestASCII(t *testing.T) {
	assert.Equal(t, "Alimentos/Bebidas/Tabaco", textfold.ASCII("Alimentos/Bebidas/Tabaco"))
	assert.Equal(t, "Senal electrica", textfold.ASCII("Señal eléctrica"))
	assert.Equal(t, "Higiene", textfold.ASCII("Higiene"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "belleza/cuidado personal", textfold.Key("  Belleza/Cuidado   Personal\n"))
	assert.Equal(t, textfold.Key("Artículos de Papelería"), textfold.Key("articulos de papeleria"))
}
