package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Los errores del proveedor
// se devuelven con el mensaje del upstream incluido.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var provErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "AI_UNAVAILABLE", Message: err.Error()}
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.As(err, &provErr):
		status := fiber.StatusInternalServerError
		if provErr.ClientFault() {
			status = fiber.StatusBadRequest
		}
		return status, dto.ErrorResponse{
			Code:    "PROVIDER_ERROR",
			Message: "Error al interactuar con la API de Gemini: " + err.Error(),
		}
	case errors.Is(err, domain.ErrEmptyResponse):
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code: "EMPTY_RESPONSE", Message: "La API de Gemini no devolvió texto en la respuesta.",
		}
	case errors.Is(err, domain.ErrConfig):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "PROMPT_TEMPLATE", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code: "INTERNAL", Message: "Ocurrió un error interno: " + err.Error(),
		}
	}
}
