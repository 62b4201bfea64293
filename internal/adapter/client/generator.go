package client

import (
	"context"

	"github.com/Jedelmann90/pii-detection-tool/internal/domain/service"
)

// HTTPGenerator adapts ModelClient to the TextGenerator interface
type HTTPGenerator struct {
	client *ModelClient
}

// NewHTTPGenerator creates a new HTTPGenerator
func NewHTTPGenerator(client *ModelClient) service.TextGenerator {
	return &HTTPGenerator{client: client}
}

// Generate sends a prompt through the HTTP transport
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
