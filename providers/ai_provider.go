package providers

import (
	"fmt"

	"github.com/locr-dev/locr/providers/contracts"
	"github.com/locr-dev/locr/providers/ollama"
	contracts2 "github.com/locr-dev/locr/token_management/contracts"
)

// AIProviderConfig is the model invocation configuration.
type AIProviderConfig struct {
	Provider    string   `mapstructure:"provider"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	Temperature *float32 `mapstructure:"temperature"`
	MaxTokens   int      `mapstructure:"max_tokens"`
}

// ReviewProviderFactory selects the provider implementation by name.
func ReviewProviderFactory(config *AIProviderConfig, tokenManagement contracts2.ITokenManagement) (contracts.IReviewProvider, error) {
	switch config.Provider {
	case "ollama", "":
		return ollama.NewOllamaReviewProvider(&ollama.OllamaConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			TokenManagement: tokenManagement,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
