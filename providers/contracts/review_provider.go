package contracts

import "context"

// IReviewProvider is the model invocation boundary: prompt in, raw text
// out. It is the only call into the inference engine and carries no
// contract beyond "returns text or fails".
type IReviewProvider interface {
	ReviewCompletionRequest(ctx context.Context, prompt string, maxTokens int) (string, error)
}
