package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/prompt"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
	"github.com/jhoicas/categorizador-gpc/pkg/metrics"
)

// GenerationSettings configuración inmutable construida al arrancar y compartida por los casos de uso.
type GenerationSettings struct {
	APIKeyConfigured bool
	DescribeKey      string // plantilla por defecto de /summarize-description/
	ClassifyKey      string // plantilla de /generate-and-segment/
}

// DefaultGenerationSettings claves de plantilla estándar.
func DefaultGenerationSettings(apiKeyConfigured bool) GenerationSettings {
	return GenerationSettings{
		APIKeyConfigured: apiKeyConfigured,
		DescribeKey:      prompt.KeyDescribe,
		ClassifyKey:      prompt.KeyClassify,
	}
}

// SummarizeUseCase genera una descripción del producto a partir de la descripción corta.
type SummarizeUseCase struct {
	llm      ports.TextGenerator
	prompts  ports.PromptSource
	settings GenerationSettings
	log      *logger.Logger
}

// NewSummarizeUseCase construye el caso de uso inyectando el generador y las plantillas.
func NewSummarizeUseCase(
	llm ports.TextGenerator,
	prompts ports.PromptSource,
	settings GenerationSettings,
	log *logger.Logger,
) *SummarizeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SummarizeUseCase{llm: llm, prompts: prompts, settings: settings, log: log}
}

// Summarize valida la entrada, renderiza la plantilla y hace una única llamada al generador.
// Sin API key devuelve domain.ErrUnavailable sin tocar el proveedor.
func (uc *SummarizeUseCase) Summarize(ctx context.Context, req dto.GenerationRequest) (*dto.SummarizeResponse, error) {
	if !uc.settings.APIKeyConfigured {
		return nil, fmt.Errorf("%w: la API Key de Gemini no está configurada en el servidor", domain.ErrUnavailable)
	}
	if strings.TrimSpace(req.UserDescriptionInput) == "" {
		return nil, domain.Validation("la 'user_description_input' no puede estar vacía")
	}

	key := uc.settings.DescribeKey
	if req.PromptKey != nil && strings.TrimSpace(*req.PromptKey) != "" {
		key = strings.TrimSpace(*req.PromptKey)
		if _, ok := uc.prompts.Get(key); !ok {
			return nil, domain.Validation(fmt.Sprintf("prompt_key %q no existe", key))
		}
	}

	tmpl, _ := uc.prompts.Get(key)
	finalPrompt, err := prompt.Render(tmpl, map[string]string{
		prompt.FieldUserInput: req.UserDescriptionInput,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: plantilla %s: %v", domain.ErrConfig, key, err)
	}
	if strings.TrimSpace(finalPrompt) == "" {
		return nil, domain.Validation("el prompt final construido está vacío")
	}

	text, err := uc.llm.Generate(ctx, finalPrompt)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues("summarize", outcome(err)).Inc()
		uc.log.Error().Err(err).Str("prompt_key", key).Msg("error de la API de Gemini")
		return nil, err
	}
	metrics.GenerationCalls.WithLabelValues("summarize", "ok").Inc()

	return &dto.SummarizeResponse{GeneratedDescription: text}, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyResponse):
		return "empty"
	case errors.Is(err, domain.ErrProvider):
		return "provider_error"
	default:
		return "error"
	}
}
