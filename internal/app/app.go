package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mark3labs/tfgen/internal/artifact"
	"github.com/mark3labs/tfgen/internal/config"
	"github.com/mark3labs/tfgen/internal/format"
	"github.com/mark3labs/tfgen/internal/generate"
	"github.com/mark3labs/tfgen/internal/prompt"
)

// Report records how far a run got.
type Report struct {
	Region    string
	Prompt    string
	Generated bool
	Saved     artifact.Status
	Formatted format.Result
	// Diagnostics counts HCL syntax problems found in the saved file.
	Diagnostics int
}

// App runs one generation: load the API key, pick a region, call the model,
// save the result and format it.
type App struct {
	opts Options
}

// New creates an App, filling in defaults for optional Options fields.
func New(opts Options) *App {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &App{opts: opts}
}

// Run executes the pipeline. Only an invalid API key or an unusable prompt
// template is returned as an error; every later failure is logged and ends
// the run early with a nil error.
func (a *App) Run(ctx context.Context) (*Report, error) {
	cfg := a.opts.Config
	logger := a.opts.Logger
	report := &Report{}

	apiKey, err := config.LoadAPIKey(a.opts.Getenv, cfg.APIKeyEnv)
	if err != nil {
		return nil, err
	}

	report.Region = cfg.Region
	if report.Region == "" {
		report.Region = a.opts.Console.AskRegion(cfg.DefaultRegion)
	}
	logger.Debug("region selected", "region", report.Region)

	tpl, err := prompt.LoadTemplate(cfg.PromptFile, a.opts.Getenv)
	if err != nil {
		return nil, err
	}
	report.Prompt, err = tpl.Render(map[string]string{
		"region":  report.Region,
		"request": cfg.Request,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt template: %w", err)
	}

	text, ok := a.generate(ctx, apiKey, report.Prompt)
	if !ok {
		logger.Error("failed to generate Terraform code")
		return report, nil
	}
	report.Generated = true

	if cfg.StripFences {
		text = artifact.ExtractCode(text)
	}

	writer := artifact.NewWriter(a.opts.Console, a.opts.Out, logger)
	report.Saved = writer.Save(text, cfg.Output, cfg.Force)
	if report.Saved != artifact.StatusWritten {
		return report, nil
	}

	if cfg.ValidateHCL {
		report.Diagnostics = a.validate(text, cfg.Output)
	}

	runner := format.NewRunner(cfg.Formatter, a.opts.Out, logger)
	runner.SetBuiltinFallback(cfg.BuiltinFmt)
	report.Formatted = runner.Run(ctx, cfg.Output)

	return report, nil
}

func (a *App) generate(ctx context.Context, apiKey, promptText string) (string, bool) {
	cfg := a.opts.Config

	model, err := a.opts.NewModel(ctx, apiKey)
	if err != nil {
		a.opts.Logger.Error("could not create model client", "model", cfg.Model, "err", err)
		return "", false
	}

	gen := generate.NewGenerator(model, a.opts.Logger)
	gen.MaxAttempts = cfg.MaxRetries
	gen.Backoff = generate.Backoff{Base: cfg.RetryBaseDelay, Max: cfg.RetryMaxDelay}
	gen.Timeout = cfg.Timeout

	text, err := gen.Generate(ctx, promptText)
	if err != nil {
		return "", false
	}
	return text, true
}

func (a *App) validate(text, path string) int {
	diags := artifact.Validate(text, path)
	for _, d := range diags {
		kv := []any{"summary", d.Summary}
		if d.Detail != "" {
			kv = append(kv, "detail", d.Detail)
		}
		if d.Subject != nil {
			kv = append(kv, "at", d.Subject.String())
		}
		a.opts.Logger.Warn("generated code has HCL syntax problems", kv...)
	}
	return len(diags)
}
