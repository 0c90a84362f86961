package ports

import "context"

// TextGenerator define el puerto de salida hacia la API de generación de texto.
// Cualquier adaptador (Gemini, mock de tests) debe implementar esta interfaz.
type TextGenerator interface {
	// Generate envía el prompt ya renderizado y devuelve el texto generado.
	// Devuelve *domain.ProviderError si el proveedor reporta un error y
	// domain.ErrEmptyResponse si la llamada tiene éxito pero sin texto.
	Generate(ctx context.Context, prompt string) (string, error)
}
