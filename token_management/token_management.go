package token_management

import (
	"fmt"

	"github.com/locr-dev/locr/constants/lipgloss"
	"github.com/locr-dev/locr/token_management/contracts"
)

// tokenManager accumulates token usage across a review run.
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

func (tm *tokenManager) DisplayTokens(providerName string, model string) {
	tokenInfo := fmt.Sprintf("Tokens Used: %d (Input: %d, Output: %d) - Provider: %s - Model: %s",
		tm.usedToken, tm.usedInputToken, tm.usedOutputToken, providerName, model)
	fmt.Println(lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
