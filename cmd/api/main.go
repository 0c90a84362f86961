package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/categorizador-gpc/internal/application/ports"
	"github.com/jhoicas/categorizador-gpc/internal/application/taxonomy"
	"github.com/jhoicas/categorizador-gpc/internal/application/usecase"
	"github.com/jhoicas/categorizador-gpc/internal/domain"
	infraai "github.com/jhoicas/categorizador-gpc/internal/infrastructure/ai"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/csvsource"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/promptstore"
	"github.com/jhoicas/categorizador-gpc/internal/infrastructure/taxonomystore"
	httpRouter "github.com/jhoicas/categorizador-gpc/internal/interfaces/http"
	"github.com/jhoicas/categorizador-gpc/pkg/config"
	"github.com/jhoicas/categorizador-gpc/pkg/logger"
)

// unavailableGenerator ocupa el lugar del cliente Gemini cuando no hay API key;
// los casos de uso responden 503 antes de llegar a él.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string) (string, error) {
	return "", domain.ErrUnavailable
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("taxonomy_backend", cfg.Taxonomy.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	prompts, err := promptstore.Load(cfg.Prompts.File)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.Prompts.File).Msg("prompts no cargados; los endpoints responderán 400")
	} else {
		log.Info().Int("count", prompts.Len()).Strs("keys", prompts.Keys()).Msg("prompts cargados")
	}

	var generator ports.TextGenerator = unavailableGenerator{}
	if cfg.Gemini.KeyConfigured() {
		gemini, err := infraai.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Gemini")
		}
		defer gemini.Close()
		generator = gemini
	} else {
		log.Warn().Msg("GOOGLE_API_KEY no configurada; /summarize-description/ y /generate-and-segment/ responderán 503")
	}

	store, err := taxonomystore.Open(ctx, cfg.Taxonomy, cfg.DB)
	if err != nil {
		// Sin almacén la clasificación sigue funcionando con una taxonomía vacía.
		log.Error().Err(err).Msg("almacén de taxonomía no disponible")
	}
	defer store.Close()

	var taxonomySvc usecase.TaxonomyReader = emptyTaxonomy{}
	if store != nil {
		if cfg.Taxonomy.Backend == config.BackendMemory && cfg.Taxonomy.SeedCSV != "" {
			seedMemory(ctx, log, store, cfg.Taxonomy)
		}
		taxonomySvc = taxonomy.NewService(store.Repo, cfg.Taxonomy.Table, log.Child("taxonomy"))
	}

	settings := usecase.DefaultGenerationSettings(cfg.Gemini.KeyConfigured())
	summarizeUC := usecase.NewSummarizeUseCase(generator, prompts, settings, log.Child("summarize"))
	segmentUC := usecase.NewSegmentUseCase(summarizeUC, taxonomySvc, generator, prompts, settings, log.Child("segment"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 120,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Child("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Categorizador GPC API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		KeyConfigured: cfg.Gemini.KeyConfigured(),
		Prompts:       prompts,
		SummarizeUC:   summarizeUC,
		SegmentUC:     segmentUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedMemory carga el CSV de segmentos en el almacén en memoria al arrancar.
func seedMemory(ctx context.Context, log *logger.Logger, store *taxonomystore.Store, tax config.TaxonomyConfig) {
	records, err := csvsource.ReadFile(tax.SeedCSV, csvsource.Options{LabelField: tax.LabelField})
	if err != nil {
		log.Error().Err(err).Str("file", tax.SeedCSV).Msg("leer CSV de taxonomía")
		return
	}
	report := taxonomy.NewLoader(store.Repo, log.Child("loader")).UpsertAll(ctx, tax.Table, records)
	if err := report.Err(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Int("failed", len(report.Failures)).Msg("carga parcial de la taxonomía")
	}
	log.Info().Int("upserted", report.Upserted).Int("total", report.Total).Msg("taxonomía en memoria cargada")
}

// emptyTaxonomy se usa cuando el almacén no pudo abrirse.
type emptyTaxonomy struct{}

func (emptyTaxonomy) Fetch(context.Context) taxonomy.Result {
	return taxonomy.Result{Status: taxonomy.StatusFailed, Err: domain.ErrTableAccess}
}
