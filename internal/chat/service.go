// Package chat sends messages to the chat backend through the
// authenticated request pipeline.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatterm/chatterm/internal/requester"
)

// Service posts chat messages and returns the model's replies.
type Service struct {
	http *requester.HTTPRequester
}

// NewService creates a new chat Service
func NewService(http *requester.HTTPRequester) *Service {
	return &Service{http: http}
}

type sendRequest struct {
	Message string `json:"message"`
}

type sendResponse struct {
	Response string `json:"response"`
}

// Send posts one message and waits for the reply.
func (s *Service) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is empty")
	}

	resp, err := s.http.Post(ctx, "/chat", sendRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("chat request rejected (status %d)", resp.StatusCode)
	}

	var payload sendResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	return payload.Response, nil
}
