// Package llm provides the LLM providers behind the agenda briefing.
// The scheduling engine is deterministic and never consults a model;
// this package only narrates schedules that are already computed.
package llm

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)
}
