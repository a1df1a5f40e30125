package models

// Message is a single chat message in an Ollama conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options carries the generation parameters locr sets per request.
type Options struct {
	Temperature *float32 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

// OllamaChatCompletionRequest is the request body for /chat.
type OllamaChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  *Options  `json:"options,omitempty"`
}

// OllamaChatCompletionResponse is the non-streaming response body.
type OllamaChatCompletionResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}
