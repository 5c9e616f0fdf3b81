package app

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mark3labs/tfgen/internal/config"
	"github.com/mark3labs/tfgen/internal/generate"
)

// Console is the interactive surface the pipeline needs. *prompt.Console
// satisfies it; tests supply stubs.
type Console interface {
	AskRegion(def string) string
	Confirm(question string) bool
}

// ModelFactory builds the remote model once the API key is known.
type ModelFactory func(ctx context.Context, apiKey string) (generate.Model, error)

// Options configures an App.
type Options struct {
	// Config is the resolved run configuration. Required.
	Config *config.Config

	// Getenv looks up environment variables for the API key and prompt
	// file substitution. Defaults to os.Getenv.
	Getenv func(string) string

	// Console asks for the region and overwrite confirmation. Required.
	Console Console

	// NewModel creates the generation backend. Required.
	NewModel ModelFactory

	// Out receives user-facing progress lines. Defaults to io.Discard.
	Out io.Writer

	// Logger receives diagnostics. Defaults to log.Default().
	Logger *log.Logger
}
