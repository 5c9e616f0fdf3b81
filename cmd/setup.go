package cmd

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mark3labs/tfgen/internal/app"
	"github.com/mark3labs/tfgen/internal/config"
	"github.com/mark3labs/tfgen/internal/generate"
)

// logger is shared by every command. It is replaced in initConfig once the
// debug setting is known.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.DateTime,
})

func setupLogger(debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	log.SetDefault(logger)
}

// BuildGeminiConfig converts the run configuration into client options.
func BuildGeminiConfig(cfg *config.Config, apiKey string) generate.GeminiConfig {
	return generate.GeminiConfig{
		APIKey:      apiKey,
		Model:       cfg.Model,
		BaseURL:     cfg.BaseURL,
		APIVersion:  cfg.APIVersion,
		Temperature: cfg.Temperature,
	}
}

func geminiFactory(cfg *config.Config) app.ModelFactory {
	return func(ctx context.Context, apiKey string) (generate.Model, error) {
		logger.Debug("creating Gemini client", "model", cfg.Model, "base_url", cfg.BaseURL)
		return generate.NewGeminiModel(ctx, BuildGeminiConfig(cfg, apiKey))
	}
}
