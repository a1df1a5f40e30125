package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/locr-dev/locr/providers/contracts"
	"github.com/locr-dev/locr/providers/models"
	ollama_models "github.com/locr-dev/locr/providers/ollama/models"
	contracts2 "github.com/locr-dev/locr/token_management/contracts"
)

// OllamaConfig implements the review provider interface against a
// locally hosted Ollama server.
type OllamaConfig struct {
	BaseURL         string
	Model           string
	Temperature     *float32
	TokenManagement contracts2.ITokenManagement
	client          *http.Client
}

const defaultBaseURL = "http://localhost:11434/api"

// NewOllamaReviewProvider initializes a new Ollama provider.
func NewOllamaReviewProvider(config *OllamaConfig) contracts.IReviewProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		Temperature:     config.Temperature,
		TokenManagement: config.TokenManagement,
		client:          &http.Client{},
	}
}

// ReviewCompletionRequest sends one prompt and blocks until the full
// response text is available. The inference call is synchronous and
// carries no timeout of its own; cancellation comes from ctx.
func (ollamaProvider *OllamaConfig) ReviewCompletionRequest(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := ollama_models.OllamaChatCompletionRequest{
		Model: ollamaProvider.Model,
		Messages: []ollama_models.Message{
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Options: &ollama_models.Options{
			Temperature: ollamaProvider.Temperature,
			NumPredict:  maxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ollamaProvider.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", fmt.Errorf("request canceled: %w", err)
		}
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err != nil || apiError.Error.Message == "" {
			return "", fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
		}
		return "", fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	var response ollama_models.OllamaChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}

	if ollamaProvider.TokenManagement != nil && response.PromptEvalCount > 0 {
		ollamaProvider.TokenManagement.UsedTokens(response.PromptEvalCount, response.EvalCount)
	}

	return response.Message.Content, nil
}
