package ports

// PromptSource plantillas de prompt por nombre, de solo lectura.
type PromptSource interface {
	Get(key string) (string, bool)
	Len() int
}
