// Package llm defines the boundary to the text-generation service and
// its Anthropic implementation.
package llm

import "context"

// Request is a single-turn completion request.
type Request struct {
	// Model overrides the client's configured model when non-empty.
	Model     string
	MaxTokens int
	Prompt    string
}

// Response carries the concatenated text of the reply plus token
// accounting for logging.
type Response struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Client is the injectable boundary to the generation service. One
// blocking round trip per call; callers decide whether an error is
// fatal.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	ModelName() string
}
