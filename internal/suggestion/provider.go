package suggestion

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/frahmantamala/access-console/internal"
)

// DefaultGoogleModel is used when no model is configured for google.
const DefaultGoogleModel = "gemini-2.5-flash"

const (
	ProviderGoogle  = "google"
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
	ProviderOffline = "offline"
)

// NewModel builds the language model named by cfg.Provider.
func NewModel(ctx context.Context, cfg internal.SuggestionConfig) (llms.Model, error) {
	switch cfg.Provider {
	case ProviderGoogle:
		return newGoogleModel(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAIModel(cfg)
	case ProviderOllama:
		return newOllamaModel(cfg)
	case ProviderOffline:
		return NewKeywordModel(), nil
	default:
		return nil, fmt.Errorf("unsupported suggestion provider: %s", cfg.Provider)
	}
}

func newGoogleModel(ctx context.Context, cfg internal.SuggestionConfig) (llms.Model, error) {
	if cfg.BaseURL != "" {
		return nil, fmt.Errorf("googleai does not support custom base_url")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGoogleModel
	}
	opts := []googleai.Option{
		googleai.WithDefaultModel(model),
		googleai.WithAPIKey(cfg.APIKey),
	}
	return googleai.New(ctx, opts...)
}

func newOpenAIModel(cfg internal.SuggestionConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	return openai.New(opts...)
}

func newOllamaModel(cfg internal.SuggestionConfig) (llms.Model, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
		ollama.WithFormat("json"),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	return ollama.New(opts...)
}
