package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/application/usecase"
)

// GenerationHandler maneja los endpoints que llaman a Gemini.
type GenerationHandler struct {
	summarize *usecase.SummarizeUseCase
	segment   *usecase.SegmentUseCase
}

// NewGenerationHandler construye el handler.
func NewGenerationHandler(summarize *usecase.SummarizeUseCase, segment *usecase.SegmentUseCase) *GenerationHandler {
	return &GenerationHandler{summarize: summarize, segment: segment}
}

// SummarizeDescription godoc
// @Summary      Generar descripción de producto
// @Description  Recibe la descripción corta de un producto (ej: Leche ALQUERIA uat semidescremada x1LTR)
//               y devuelve la descripción generada por Gemini con la plantilla configurada.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerationRequest  true  "user_description_input (obligatorio) y prompt_key (opcional)"
// @Success      200   {object}  dto.SummarizeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /summarize-description/ [post]
func (h *GenerationHandler) SummarizeDescription(c *fiber.Ctx) error {
	var req dto.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	out, err := h.summarize.Summarize(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GenerateAndSegment godoc
// @Summary      Describir y clasificar producto en un segmento GPC
// @Description  Genera la descripción del producto y la clasifica contra la taxonomía de segmentos GPC
//               almacenada en la tabla. El segmento devuelto es el texto del modelo sin validar;
//               segment_in_taxonomy indica si coincide con algún segmento de la tabla.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerationRequest  true  "misma entrada que /summarize-description/"
// @Success      200   {object}  dto.SegmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /generate-and-segment/ [post]
func (h *GenerationHandler) GenerateAndSegment(c *fiber.Ctx) error {
	var req dto.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	out, err := h.segment.GenerateAndSegment(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
