package models

// AIError is the error envelope returned by provider HTTP APIs.
type AIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
