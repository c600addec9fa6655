package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ecoscore/internal/configuration"
	"ecoscore/internal/generate"
	"ecoscore/internal/history"
	"ecoscore/internal/score"
	"ecoscore/internal/server"
	"ecoscore/internal/suggest"
)

// prepareLogger configures the global slog logger with JSON output on
// os.Stdout. Accepts a string log level ("debug", "info", "warn",
// "error"); unrecognized values fall back to Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// loadRules returns the configured suggestion rule table, or the built-in
// one when no path is configured.
func loadRules(path string) ([]suggest.Rule, error) {
	if path == "" {
		return suggest.DefaultRules()
	}
	return suggest.LoadRulesFile(path)
}

// On configuration, rule loading or component initialization errors the
// application exits with code 1.
func main() {
	configPath := flag.String("config", "/etc/ecoscore/config.yaml", "configuration file")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	rules, err := loadRules(config.Suggestions.Rules)
	if err != nil {
		slog.Error("Unable to load suggestion rules", "error", err)
		os.Exit(1)
	}
	engine := suggest.NewEngine(rules)

	calculator := score.NewCalculator(
		config.Scoring.GwpMax,
		config.Scoring.CostMax,
		config.Scoring.CircularityMax,
	)
	defaults := score.Weights{
		Gwp:         config.Scoring.Weights.Gwp,
		Circularity: config.Scoring.Weights.Circularity,
		Cost:        config.Scoring.Weights.Cost,
	}

	var generator generate.Generator = generate.Noop{}
	if config.Generator.Provider != "" {
		generator = generate.NewClient(
			config.Generator.Url,
			config.Generator.ApiKey,
			config.Generator.Model,
			config.Generator.Timeout,
			config.Generator.MaxSuggestions,
		)
	}

	historyRepo := history.NewRepository(config.History.Length)
	var journal history.Journal = history.NoopJournal{}
	if config.History.File != "" {
		journal = history.NewJsonJournal(config.History.File, config.History.Size, config.History.Backups)
	}

	srv := server.NewServer(
		config.Server.Address,
		config.Server.Static,
		calculator,
		defaults,
		engine,
		generator,
		historyRepo,
		journal,
	)
	go srv.ListenAndServe()
	slog.Info("Server listening " + config.Server.Address)
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped")

	journal.Close()
}
