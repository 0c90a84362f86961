package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
)

// HealthHandler informa del estado de configuración del servicio.
type HealthHandler struct {
	appName       string
	keyConfigured bool
	prompts       ports.PromptSource
}

// NewHealthHandler construye el handler.
func NewHealthHandler(appName string, keyConfigured bool, prompts ports.PromptSource) *HealthHandler {
	return &HealthHandler{appName: appName, keyConfigured: keyConfigured, prompts: prompts}
}

// Info godoc
// @Summary      Estado de la API
// @Description  Indica si la API Key de Gemini está configurada y cuántas plantillas de prompt se cargaron.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.InfoResponse
// @Router       / [get]
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	keyStatus := "NO configurada"
	if h.keyConfigured {
		keyStatus = "configurada"
	}
	n := h.prompts.Len()
	promptsStatus := "NO cargados o error"
	if n > 0 {
		promptsStatus = fmt.Sprintf("%d cargados", n)
	}
	return c.JSON(dto.InfoResponse{
		Message:         "API lista.",
		GeminiKeyStatus: keyStatus,
		PromptsStatus:   promptsStatus,
		PromptsLoaded:   n,
		Endpoints: map[string]string{
			"/summarize-description/ (POST)": "Requiere user_description_input y opcionalmente prompt_key. Devuelve generated_description.",
			"/generate-and-segment/ (POST)":  "Misma entrada. Devuelve assigned_segment según la taxonomía GPC.",
		},
	})
}

// Health godoc
// @Summary      Liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.appName})
}
