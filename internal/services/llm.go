package services

import (
	"context"
	"fmt"

	"github.com/jwebster45206/wumpus-hunt/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API.
// The game core never touches the network; it only sees this boundary.
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a chat response using the LLM
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}

// NetworkError wraps a transport-level failure talking to the provider.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("llm network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the provider rejected our credential.
type AuthError struct {
	Provider string
	Status   int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s rejected credentials (status %d)", e.Provider, e.Status)
}

// APIError is a non-auth failure reported by the provider.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d)", e.Provider, e.Status)
}
