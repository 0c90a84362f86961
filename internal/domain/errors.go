package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrConfig        = errors.New("configuración inválida o ausente")
	ErrValidation    = errors.New("entrada inválida")
	ErrUnavailable   = errors.New("servicio no disponible")
	ErrProvider      = errors.New("error del proveedor de IA")
	ErrEmptyResponse = errors.New("el proveedor de IA no devolvió texto")

	// ErrTableAccess agrupa los fallos contra el almacén de taxonomía.
	ErrTableAccess    = errors.New("error de acceso a la tabla de taxonomía")
	ErrTableAuth      = fmt.Errorf("%w: credenciales rechazadas", ErrTableAccess)
	ErrTableTransport = fmt.Errorf("%w: fallo de red o HTTP", ErrTableAccess)
)

// ProviderError error reportado por la API de generación. StatusCode es el código
// HTTP devuelto por el proveedor (0 si no se conoce).
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", ErrProvider.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", ErrProvider.Error(), e.Message)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProvider}
	}
	return []error{ErrProvider, e.Err}
}

// ClientFault indica si el proveedor rechazó la petición por su contenido (4xx).
func (e *ProviderError) ClientFault() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Validation construye un error de validación con detalle.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
