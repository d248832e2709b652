package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"job-optimizer/internal/analyses"
	"job-optimizer/internal/company"
	"job-optimizer/internal/documents"
	"job-optimizer/internal/llm"
	"job-optimizer/internal/llm/claude"
	"job-optimizer/internal/llm/gemini"
	"job-optimizer/internal/llm/openai"
	"job-optimizer/internal/resumes"
	"job-optimizer/internal/services/health"
	"job-optimizer/internal/shared/config"
	"job-optimizer/internal/shared/metrics"
	"job-optimizer/internal/shared/server"
	localstore "job-optimizer/internal/shared/storage/object/local"
	"job-optimizer/internal/shared/telemetry"
	"job-optimizer/resume/render"
)

// App holds the long-lived dependencies built once at process start.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	LLM     llm.Client
	Metrics *metrics.Registry
	Uploads *localstore.Store
	Outputs *localstore.Store

	ResumesService   *resumes.Service
	CompanyService   *company.Service
	AnalysesService  *analyses.Service
	DocumentsService *documents.Service

	ResumesHandler   *resumes.Handler
	CompanyHandler   *company.Handler
	AnalysesHandler  *analyses.Handler
	DocumentsHandler *documents.Handler
}

type options struct {
	llm   llm.Client
	clock func() time.Time
}

// Option customizes Build, mostly for tests.
type Option func(*options)

// WithLLM replaces the provider client. The replacement is still instrumented.
func WithLLM(c llm.Client) Option {
	return func(o *options) { o.llm = c }
}

// WithClock fixes the time used for output file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// Build wires configuration, the model client, stores, services, handlers and the router.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	settings := settingsFor(cfg)
	base := o.llm
	if base == nil {
		var err error
		base, err = buildLLM(ctx, cfg, settings)
		if err != nil {
			return nil, err
		}
	}

	reg := metrics.New()
	client := llm.NewInstrumented(base, settings, reg)
	uploads := localstore.New(cfg.UploadDir)
	outputs := localstore.New(cfg.OutputDir)
	renderer := render.New(outputs)
	if o.clock != nil {
		renderer = renderer.WithClock(o.clock)
	}

	app := &App{
		Config:  cfg,
		LLM:     client,
		Metrics: reg,
		Uploads: uploads,
		Outputs: outputs,

		ResumesService:   &resumes.Service{LLM: client, Uploads: uploads},
		CompanyService:   &company.Service{LLM: client},
		AnalysesService:  &analyses.Service{LLM: client},
		DocumentsService: &documents.Service{LLM: client, Renderer: renderer, Outputs: outputs},
	}
	app.ResumesHandler = resumes.NewHandler(app.ResumesService, cfg.MaxUploadSize)
	app.CompanyHandler = company.NewHandler(app.CompanyService)
	app.AnalysesHandler = analyses.NewHandler(app.AnalysesService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Health:  health.NewService(cfg.AppName, cfg.AppVersion, cfg.LLMProvider, cfg.LLMModel),
		Metrics: reg,
		Handlers: []server.RouteRegistrar{
			app.ResumesHandler,
			app.CompanyHandler,
			app.AnalysesHandler,
			app.DocumentsHandler,
		},
	})
	return app, nil
}

// NewLLM builds the configured provider client without the rest of the app.
func NewLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	return buildLLM(ctx, cfg, settingsFor(cfg))
}

func settingsFor(cfg config.Config) llm.Settings {
	return llm.Settings{
		Provider:    cfg.LLMProvider,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}
}

// buildLLM constructs the configured provider. Without an API key, dev-like environments
// get a placeholder that fails every call.
func buildLLM(ctx context.Context, cfg config.Config, settings llm.Settings) (llm.Client, error) {
	if cfg.LLMAPIKey == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.llm.placeholder", map[string]any{
				"provider": cfg.LLMProvider,
				"reason":   "no API key configured",
			})
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("LLM_API_KEY is required for provider %s", cfg.LLMProvider)
	}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, settings, gemini.Options{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	case config.ProviderAnthropic:
		return claude.NewClient(settings, claude.Options{
			APIKey:  cfg.LLMAPIKey,
			BaseURL: cfg.LLMBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.LLMAPIKey, settings, cfg.LLMBaseURL, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
