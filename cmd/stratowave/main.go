package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Stratowave/internal/assistant"
	"Stratowave/internal/chatbot"
	"Stratowave/internal/config"
	"Stratowave/internal/prefs"
	"Stratowave/internal/server"
	"Stratowave/internal/site"
	"Stratowave/internal/telemetry"

	flag "github.com/spf13/pflag"
)

func main() {
	var (
		configPath string
		envFile    string
		listen     string
		logDir     string
		model      string
		storeType  string
		sqlitePath string
		redisURL   string
		debug      bool
	)

	flag.StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	flag.StringVar(&envFile, "env-file", ".env", "Path to .env file with the API key")
	flag.StringVarP(&listen, "listen", "l", "", "Listen address (overrides config)")
	flag.StringVar(&logDir, "log-dir", "", "Directory for logs, traces and metrics")
	flag.StringVar(&model, "model", "", "Gemini model name")
	flag.StringVar(&storeType, "store", "", "Preference store (sqlite|redis)")
	flag.StringVar(&sqlitePath, "sqlite-path", "", "SQLite database file")
	flag.StringVar(&redisURL, "redis-url", "", "Redis URL, e.g. redis://localhost:6379/0")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	// flags win over the file
	if flag.CommandLine.Changed("listen") {
		cfg.Listen = listen
	}
	if flag.CommandLine.Changed("log-dir") {
		cfg.LogDir = logDir
	}
	if flag.CommandLine.Changed("model") {
		cfg.Assistant.Model = model
	}
	if flag.CommandLine.Changed("store") {
		cfg.Store.Driver = storeType
	}
	if flag.CommandLine.Changed("sqlite-path") {
		cfg.Store.SQLitePath = sqlitePath
	}
	if flag.CommandLine.Changed("redis-url") {
		cfg.Store.RedisURL = redisURL
	}
	if debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, logFile, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	tracer, meter, cleanup, err := telemetry.InitTelemetry(ctx, cfg.LogDir, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := prefs.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.APIKey == "" {
		logger.Warn("no API key configured; chat widgets will report a configuration error")
	}

	gemini := assistant.NewGemini(
		assistant.WithAPIKey(cfg.APIKey),
		assistant.WithModel(cfg.Assistant.Model),
		assistant.WithBaseURL(cfg.Assistant.BaseURL),
		assistant.WithGenerationConfig(cfg.Assistant.Temperature, cfg.Assistant.MaxOutputTokens),
		assistant.WithLogger(logger),
		assistant.WithTracer(tracer),
		assistant.WithMeter(meter),
	)

	registry := chatbot.NewRegistry(func(id string) *chatbot.Manager {
		return chatbot.NewManager(gemini,
			chatbot.WithInstruction(cfg.Assistant.SystemInstruction),
			chatbot.WithLogger(logger.With("widget_id", id)),
			chatbot.WithTracer(tracer),
			chatbot.WithMeter(meter),
		)
	}, cfg.Widgets.IdleTTL, logger)
	go registry.Run(ctx, cfg.Widgets.ReapInterval)

	renderer, err := site.NewRenderer(store, cfg.Site, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(registry, renderer, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"listen", cfg.Listen,
			"model", cfg.Assistant.Model,
			"store", cfg.Store.Driver)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
