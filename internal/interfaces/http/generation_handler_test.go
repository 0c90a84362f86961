package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/categorizador-gpc/internal/application/dto"
	"github.com/jhoicas/categorizador-gpc/internal/application/taxonomy"
	"github.com/jhoicas/categorizador-gpc/internal/application/usecase"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
	"github.com/jhoicas/categorizador-gpc/internal/domain/entity"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/promptstore"
	apphttp "github.com/jhoicas/categorizador-gpc/internal/interfaces/http"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type scriptedGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, p string) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, p)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.responses) {
		return g.responses[i], nil
	}
	return "", domain.ErrEmptyResponse
}

type staticTaxonomy struct{ labels []string }

func (s staticTaxonomy) Fetch(context.Context) taxonomy.Result {
	res := taxonomy.Result{Status: taxonomy.StatusComplete}
	for _, l := range s.labels {
		res.Records = append(res.Records, &entity.SegmentRecord{PartitionKey: "Segmentos", RowKey: l, Label: l})
	}
	return res
}

type appOptions struct {
	keyConfigured bool
	prompts       map[string]string
	labels        []string
}

func defaultPrompts() map[string]string {
	return map[string]string{
		"generate_product_description_prompt": "Summarize: {user_input}",
		"gpc_categorization_segment":          "Segmentos:\n- {}\nProducto: {}",
	}
}

// buildTestApp construye la aplicación Fiber con el router real y un generador guionizado.
func buildTestApp(gen *scriptedGenerator, opts appOptions) *fiber.App {
	prompts := promptstore.New(opts.prompts)
	settings := usecase.DefaultGenerationSettings(opts.keyConfigured)
	summarize := usecase.NewSummarizeUseCase(gen, prompts, settings, nil)
	segment := usecase.NewSegmentUseCase(summarize, staticTaxonomy{labels: opts.labels}, gen, prompts, settings, nil)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:       "categorizador-gpc-test",
		KeyConfigured: opts.keyConfigured,
		Prompts:       prompts,
		SummarizeUC:   summarize,
		SegmentUC:     segment,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /summarize-description/
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarizeDescription_OK(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Milk product"}}
	app := buildTestApp(gen, appOptions{keyConfigured: true, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"Leche ALQUERIA uat semidescremada x1LTR"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.SummarizeResponse](t, resp)
	assert.Equal(t, "Milk product", body.GeneratedDescription)
	assert.Equal(t, []string{"Summarize: Leche ALQUERIA uat semidescremada x1LTR"}, gen.prompts)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID), "toda respuesta lleva X-Request-ID")
}

func TestSummarizeDescription_SinAPIKey503(t *testing.T) {
	gen := &scriptedGenerator{}
	app := buildTestApp(gen, appOptions{keyConfigured: false, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"x"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "AI_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)
	assert.Empty(t, gen.prompts)
}

func TestSummarizeDescription_EntradaVacia400(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: true, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"   "}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSummarizeDescription_CuerpoInvalido400(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: true, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSummarizeDescription_ErrorProveedor(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   int
	}{
		{"petición rechazada", 400, fiber.StatusBadRequest},
		{"cuota", 429, fiber.StatusBadRequest},
		{"fallo del servidor", 503, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &scriptedGenerator{errs: []error{&domain.ProviderError{StatusCode: tc.status, Message: "upstream"}}}
			app := buildTestApp(gen, appOptions{keyConfigured: true, prompts: defaultPrompts()})

			resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"x"}`)
			assert.Equal(t, tc.want, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, "PROVIDER_ERROR", body.Code)
			assert.True(t, strings.HasPrefix(body.Message, "Error al interactuar con la API de Gemini"))
		})
	}
}

func TestSummarizeDescription_RespuestaVacia500(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: true, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"x"}`)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "EMPTY_RESPONSE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSummarizeDescription_PlantillaMalFormada500(t *testing.T) {
	prompts := map[string]string{"generate_product_description_prompt": "Hola {user_input"}
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: true, prompts: prompts})

	resp := postJSON(t, app, "/summarize-description/", `{"user_description_input":"x"}`)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "PROMPT_TEMPLATE", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /generate-and-segment/
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateAndSegment_OK(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Leche semidescremada UHT", "Alimentos/Bebidas/Tabaco"}}
	app := buildTestApp(gen, appOptions{
		keyConfigured: true,
		prompts:       defaultPrompts(),
		labels:        []string{"Alimentos/Bebidas/Tabaco", "Juguetes/Juegos"},
	})

	resp := postJSON(t, app, "/generate-and-segment/", `{"user_description_input":"Leche ALQUERIA"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.SegmentResponse](t, resp)
	assert.Equal(t, "Alimentos/Bebidas/Tabaco", body.AssignedSegment)
	assert.True(t, body.SegmentInTaxonomy)
	require.Len(t, gen.prompts, 2)
	assert.Equal(t, "Segmentos:\n- Alimentos/Bebidas/Tabaco\n- Juguetes/Juegos\nProducto: Leche semidescremada UHT", gen.prompts[1])
}

func TestGenerateAndSegment_SinPlantillaDeClasificacion400(t *testing.T) {
	prompts := map[string]string{"generate_product_description_prompt": "Summarize: {user_input}"}
	gen := &scriptedGenerator{responses: []string{"desc"}}
	app := buildTestApp(gen, appOptions{keyConfigured: true, prompts: prompts})

	resp := postJSON(t, app, "/generate-and-segment/", `{"user_description_input":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, gen.prompts, "no se llama al proveedor")
}

func TestGenerateAndSegment_SinAPIKey503(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: false, prompts: defaultPrompts()})

	resp := postJSON(t, app, "/generate-and-segment/", `{"user_description_input":"x"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET / y /health
// ──────────────────────────────────────────────────────────────────────────────

func TestInfo_EstadoDeConfiguracion(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: true, prompts: defaultPrompts()})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.InfoResponse](t, resp)
	assert.Equal(t, "configurada", body.GeminiKeyStatus)
	assert.Equal(t, 2, body.PromptsLoaded)
	assert.Equal(t, "2 cargados", body.PromptsStatus)
	assert.Len(t, body.Endpoints, 2)
}

func TestInfo_SinClaveNiPrompts(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{keyConfigured: false, prompts: nil})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	body := decode[dto.InfoResponse](t, resp)
	assert.Equal(t, "NO configurada", body.GeminiKeyStatus)
	assert.Equal(t, "NO cargados o error", body.PromptsStatus)
	assert.Zero(t, body.PromptsLoaded)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(&scriptedGenerator{}, appOptions{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID), "se reutiliza el id entrante")
}
