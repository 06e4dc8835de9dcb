package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/damiloju/startup-analyst/internal/agents"
	"github.com/damiloju/startup-analyst/internal/common"
	"github.com/damiloju/startup-analyst/internal/export"
	"github.com/damiloju/startup-analyst/internal/extract"
	"github.com/damiloju/startup-analyst/internal/ml"
	"github.com/damiloju/startup-analyst/internal/pipeline"
	"github.com/damiloju/startup-analyst/internal/server"
	"github.com/damiloju/startup-analyst/internal/store"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Config: env defaults with optional YAML overlay
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := common.LoadConfigFile(configPath, true)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Document extractor
	text := extract.NewPDFText(extract.TextConfig{
		Pdftotext: cfg.Extractor.Pdftotext,
		MaxPages:  cfg.Extractor.MaxPages,
	}, nil)
	extractor := extract.NewService(text, nil)

	// Qualitative collaborator (optional)
	var collaborator agents.Collaborator
	if c := agents.NewClient(agents.ClientConfig{
		BaseURL: cfg.Agents.BaseURL,
		APIKey:  cfg.Agents.APIKey,
		Timeout: cfg.Agents.Timeout,
	}, nil); c != nil {
		collaborator = c
	}

	// Predictor: load a saved model when available, otherwise train now so
	// the first request does not pay the training cost.
	predictor := ml.NewPredictor(ml.Config{
		ModelVersion: cfg.Model.Version,
		Samples:      cfg.Model.Samples,
		Seed:         cfg.Model.Seed,
	}, nil)
	if cfg.Model.Path != "" {
		if err := predictor.Load(cfg.Model.Path); err != nil {
			log.Infow("no saved model, training", "path", cfg.Model.Path, "reason", err)
		}
	}
	if !predictor.Trained() {
		if _, err := predictor.Train(ctx); err != nil {
			log.Fatalf("training model: %v", err)
		}
		if cfg.Model.Path != "" {
			if err := predictor.Save(cfg.Model.Path); err != nil {
				log.Warnf("saving model: %v", err)
			}
		}
	}

	// History store
	history, err := store.Open(cfg.Store.Path, nil)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer history.Close()

	orchestrator := pipeline.New(pipeline.Options{
		Extractor:      extractor,
		Agents:         collaborator,
		Predictor:      predictor,
		ExtractTimeout: cfg.Extractor.Timeout,
		Version:        cfg.Model.Version,
	})
	exporter := export.NewService(history, nil)
	srv := server.New(orchestrator, predictor, history, exporter, nil)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}
	log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
