package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
	"github.com/jhoicas/categorizador-gpc/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	KeyConfigured bool
	Prompts       ports.PromptSource
	SummarizeUC   *usecase.SummarizeUseCase
	SegmentUC     *usecase.SegmentUseCase
}

// Router registra las rutas de la API. Sin autenticación: el servicio se expone detrás de la red interna.
func Router(app fiber.Router, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.AppName, deps.KeyConfigured, deps.Prompts)
	app.Get("/", healthHandler.Info)
	app.Get("/health", healthHandler.Health)

	genHandler := NewGenerationHandler(deps.SummarizeUC, deps.SegmentUC)
	app.Post("/summarize-description/", genHandler.SummarizeDescription)
	app.Post("/generate-and-segment/", genHandler.GenerateAndSegment)
}
