package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/callsight-ai/callsight/pkg/config"
)

// GenerateRequest is a provider-neutral generation request. The dispatcher
// fills Temperature and MaxTokens from the model catalog before the call.
type GenerateRequest struct {
	SystemPrompt string
	Prompt       string
	Temperature  float64
	MaxTokens    int
	JSONMode     bool
}

// Client is one provider-specific connection for one model.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ClientFactory builds a Client for a catalog entry.
type ClientFactory func(cfg ModelConfig) (Client, error)

// NewClientFactory returns a factory that picks the provider implementation
// from the catalog entry and the configured credentials.
func NewClientFactory(cfg *config.LLMConfig) ClientFactory {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	return func(mc ModelConfig) (Client, error) {
		switch mc.Provider {
		case ProviderOpenAI:
			if cfg.OpenAIAPIKey == "" {
				return nil, fmt.Errorf("openai: OPENAI_API_KEY is not configured")
			}
			return newOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, mc.ModelID, httpClient), nil
		case ProviderAnthropic:
			if cfg.AnthropicAPIKey == "" {
				return nil, fmt.Errorf("anthropic: ANTHROPIC_API_KEY is not configured")
			}
			return newAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, mc.ModelID, httpClient), nil
		case ProviderGoogle:
			if cfg.GoogleAPIKey == "" {
				return nil, fmt.Errorf("google: GOOGLE_API_KEY is not configured")
			}
			return newGoogleClient(cfg.GoogleAPIKey, cfg.GoogleBaseURL, mc.ModelID, httpClient), nil
		default:
			return nil, fmt.Errorf("unsupported provider %q", mc.Provider)
		}
	}
}
