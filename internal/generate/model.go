package generate

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// Model produces text for a prompt with a single remote call.
type Model interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig holds everything needed to construct a GeminiModel. Options
// that other clients pick up from the process environment are passed here
// explicitly.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint (for proxies and tests).
	BaseURL    string
	APIVersion string
	// Temperature is sent only when non-zero.
	Temperature float32
	HTTPClient  *http.Client
}

// GeminiModel calls the Gemini API through the genai client.
type GeminiModel struct {
	client    *genai.Client
	model     string
	genConfig *genai.GenerateContentConfig
}

// NewGeminiModel creates a Gemini API client for cfg.Model.
func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	m := &GeminiModel{client: client, model: cfg.Model}
	if cfg.Temperature != 0 {
		m.genConfig = &genai.GenerateContentConfig{Temperature: genai.Ptr(cfg.Temperature)}
	}
	return m, nil
}

// GenerateContent sends prompt as a single user turn and returns the
// concatenated text of the first candidate.
func (m *GeminiModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), m.genConfig)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ModelInfo describes a model offered by the API.
type ModelInfo struct {
	Name        string
	DisplayName string
	InputLimit  int32
	OutputLimit int32
}

// ListModels returns the models that support generateContent.
func (m *GeminiModel) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	for model, err := range m.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if !slices.Contains(model.SupportedActions, "generateContent") {
			continue
		}
		out = append(out, ModelInfo{
			Name:        strings.TrimPrefix(model.Name, "models/"),
			DisplayName: model.DisplayName,
			InputLimit:  model.InputTokenLimit,
			OutputLimit: model.OutputTokenLimit,
		})
	}
	return out, nil
}
