package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/internai/internal/ai/gemini"
	"github.com/spigell/internai/internal/filtering"
	"github.com/spigell/internai/internal/internai"
	"github.com/spigell/internai/internal/jobs"
	"github.com/spigell/internai/internal/logger"
	"github.com/spigell/internai/internal/secrets"
	"github.com/spigell/internai/internal/types"
	"github.com/spigell/internai/internal/workflow"
)

// env is what every command needs to drive the workflow.
type env struct {
	config  *Config
	logger  *zap.Logger
	session *workflow.Session
	filters *filtering.Filtering
}

// setup builds the logger, reads the config and wires the session. Startup
// failures are fatal.
func setup(ctx context.Context) *env {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	session, filters, err := buildSession(ctx, config, lg)
	if err != nil {
		lg.Fatal("building a session", zap.Error(err), zap.String("backend", config.Backend))
	}

	return &env{
		config:  config,
		logger:  lg,
		session: session,
		filters: filters,
	}
}

func buildSession(ctx context.Context, config *Config, log *zap.Logger) (*workflow.Session, *filtering.Filtering, error) {
	client := newHTTPClient(config.API, log)

	service, err := newService(ctx, config, client, log)
	if err != nil {
		return nil, nil, err
	}

	filters := filtering.New(log,
		filtering.NewExcludedCompanies(config.Filters.ExcludeCompanies, log),
		filtering.NewSources(config.Filters.Sources, log),
		filtering.NewExcludeFile(config.Filters.ExcludeFile, log),
	)

	session := workflow.NewSession(workflow.Deps{
		Service:  service,
		Registry: client,
		Filters:  filters,
		Logger:   log,
	}, workflow.AnalysisConfig{
		SampleSize:       config.Analysis.SampleSize,
		MissingSkillsCap: config.Analysis.MissingSkillsCap,
	})

	return session, filters, nil
}

func newHTTPClient(cfg *APIConfig, log *zap.Logger) *internai.Client {
	client := internai.New(logger.WithFields(log, zap.String(logger.FieldBackend, backendHTTP)), cfg.URL)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	client.SetTimeout(cfg.Timeout)
	client.SetRateLimit(cfg.RequestsPerSecond)
	return client
}

func newService(ctx context.Context, config *Config, client *internai.Client, log *zap.Logger) (workflow.Service, error) {
	backend := strings.ToLower(strings.TrimSpace(config.Backend))

	switch backend {
	case "", backendHTTP:
		if config.JobsFile == "" {
			return client, nil
		}
		return &fileSampled{Service: client, jobs: jobs.NewFileSource(config.JobsFile)}, nil
	case backendGemini:
		return newGeminiBackend(ctx, config, log)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", config.Backend)
	}
}

func newGeminiBackend(ctx context.Context, config *Config, log *zap.Logger) (*gemini.Backend, error) {
	cfg := config.AI.Gemini

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	genLogger := log.With(
		zap.String("provider", gemini.BackendName),
		zap.String("model", cfg.Model),
	)

	generator := gemini.NewGenerator(client, cfg.Model, genLogger)
	embedder := gemini.NewEmbedder(client, cfg.EmbeddingModel)

	return gemini.NewBackend(generator, embedder, jobs.NewFileSource(config.JobsFile), log, cfg.MaxLogLength), nil
}

// fileSampled serves sample jobs from a local file instead of the remote service.
type fileSampled struct {
	workflow.Service
	jobs *jobs.FileSource
}

func (f *fileSampled) SampleJobs(ctx context.Context) ([]types.JobItem, error) {
	return f.jobs.SampleJobs(ctx)
}
