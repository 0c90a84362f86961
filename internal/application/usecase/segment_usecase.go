package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
	"github.com/jhoicas/categorizador-gpc/internal/application/taxonomy"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/prompt"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
	"github.com/jhoicas/categorizador-gpc/pkg/metrics"
)

// TaxonomyReader lectura de la taxonomía de segmentos.
type TaxonomyReader interface {
	Fetch(ctx context.Context) taxonomy.Result
}

// SegmentUseCase asigna un segmento GPC a un producto.
//
// Orden fijo por petición:
//  1. plantilla de clasificación (vacía → 400, sin efectos secundarios)
//  2. una lectura de la taxonomía (los fallos degradan a la lista parcial o vacía)
//  3. Summarize interno; sus errores se devuelven sin cambios
//  4. una llamada de clasificación con segmentos y descripción
type SegmentUseCase struct {
	summarize *SummarizeUseCase
	taxonomy  TaxonomyReader
	llm       ports.TextGenerator
	prompts   ports.PromptSource
	settings  GenerationSettings
	log       *logger.Logger
}

// NewSegmentUseCase construye el caso de uso.
func NewSegmentUseCase(
	summarize *SummarizeUseCase,
	tax TaxonomyReader,
	llm ports.TextGenerator,
	prompts ports.PromptSource,
	settings GenerationSettings,
	log *logger.Logger,
) *SegmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SegmentUseCase{
		summarize: summarize,
		taxonomy:  tax,
		llm:       llm,
		prompts:   prompts,
		settings:  settings,
		log:       log,
	}
}

// GenerateAndSegment describe el producto y luego lo clasifica contra la taxonomía.
// El texto del modelo se devuelve tal cual; SegmentInTaxonomy indica si coincide con algún segmento.
func (uc *SegmentUseCase) GenerateAndSegment(ctx context.Context, req dto.GenerationRequest) (*dto.SegmentResponse, error) {
	tmpl, _ := uc.prompts.Get(uc.settings.ClassifyKey)
	if strings.TrimSpace(tmpl) == "" {
		return nil, domain.Validation("el prompt final construido está vacío")
	}

	tax := uc.taxonomy.Fetch(ctx)
	if tax.Status == taxonomy.StatusFailed {
		uc.log.Warn().Err(tax.Err).
			Int("segments", len(tax.Records)).
			Msg("clasificando con taxonomía parcial")
	}

	summary, err := uc.summarize.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}

	finalPrompt, err := prompt.Render(tmpl, nil, prompt.BulletList(tax.Labels()), summary.GeneratedDescription)
	if err != nil {
		return nil, fmt.Errorf("%w: plantilla %s: %v", domain.ErrConfig, uc.settings.ClassifyKey, err)
	}

	text, err := uc.llm.Generate(ctx, finalPrompt)
	if err != nil {
		metrics.GenerationCalls.WithLabelValues("classify", outcome(err)).Inc()
		uc.log.Error().Err(err).Msg("error durante la clasificación")
		if isClientError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("error al procesar la respuesta de Gemini: %w", err)
	}
	metrics.GenerationCalls.WithLabelValues("classify", "ok").Inc()

	inTaxonomy := tax.Contains(text)
	if !inTaxonomy {
		metrics.SegmentsOutsideTaxonomy.Inc()
		uc.log.Warn().
			Str("assigned_segment", text).
			Int("segments", len(tax.Records)).
			Msg("el segmento asignado no está en la taxonomía")
	}

	return &dto.SegmentResponse{AssignedSegment: text, SegmentInTaxonomy: inTaxonomy}, nil
}

// isClientError errores ya clasificados que deben llegar al cliente con su propio código.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnavailable) ||
		errors.Is(err, domain.ErrProvider) ||
		errors.Is(err, domain.ErrEmptyResponse)
}
