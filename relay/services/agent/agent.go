// Package agent forwards chat messages to the managed Bedrock agent and
// reassembles its streamed completion into a single reply.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"relay/relay/utils/logging"
)

var (
	// ErrEmptyMessage means the caller sent no usable text.
	ErrEmptyMessage = errors.New("message is required")
	// ErrNotConfigured means the agent id, alias id or region is missing.
	ErrNotConfigured = errors.New("agent configuration missing")
)

// NoResponseFallback is returned when the stream completes without
// producing any decodable bytes.
const NoResponseFallback = "No response from agent."

// Stream is one invoke-agent response: an ordered sequence of byte chunks.
// Err reports any failure once Chunks is drained.
type Stream interface {
	Chunks() <-chan []byte
	Err() error
	Close() error
}

// Invoker sends one invoke-agent call to the external service.
type Invoker interface {
	InvokeAgent(ctx context.Context, sessionID, inputText string) (Stream, error)
}

type Gateway struct {
	invoker Invoker
}

// NewGateway accepts a nil invoker; Send then fails with ErrNotConfigured,
// mirroring a service started without agent settings.
func NewGateway(invoker Invoker) *Gateway {
	return &Gateway{invoker: invoker}
}

// Send forwards one message and returns the reply assembled from the
// streamed chunks, strictly in arrival order.
func (g *Gateway) Send(ctx context.Context, sessionID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	if g.invoker == nil {
		return "", ErrNotConfigured
	}
	defer logging.LogDuration(ctx, "agent_gateway_send")()

	stream, err := g.invoker.InvokeAgent(ctx, sessionID, message)
	if err != nil {
		return "", fmt.Errorf("invoke agent: %w", err)
	}
	defer stream.Close()

	var completion strings.Builder
	for chunk := range stream.Chunks() {
		completion.Write(chunk)
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("consume agent stream: %w", err)
	}
	if completion.Len() == 0 {
		return NoResponseFallback, nil
	}
	return completion.String(), nil
}

// DefaultSessionID derives the session used when the caller supplies none,
// so repeated calls from one identity continue a single conversation.
func DefaultSessionID(subject string) string {
	return "session-" + subject
}
