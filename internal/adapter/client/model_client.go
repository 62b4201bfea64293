package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// GenerationConfig fixes the sampling parameters for every request. They
// are process configuration, never request-time inputs.
type GenerationConfig struct {
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
}

// GenerateRequest represents a request to the text-generation service
type GenerateRequest struct {
	Prompt          string  `json:"prompt"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"top_p"`
}

// GenerateResponse represents the response from the text-generation service
type GenerateResponse struct {
	Text string `json:"text"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version"`
}

// ModelClient is an HTTP client for a text-generation service
type ModelClient struct {
	baseURL    string
	genConfig  GenerationConfig
	httpClient *http.Client
}

// NewModelClient creates a new text-generation service client
func NewModelClient(baseURL string, genConfig GenerationConfig, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL:   baseURL,
		genConfig: genConfig,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends one prompt for completion. Connection failures and 5xx
// responses are retried with Fibonacci backoff; 4xx responses, empty
// completions and context cancellation are permanent.
func (c *ModelClient) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	body, err := json.Marshal(GenerateRequest{
		Prompt:          prompt,
		MaxOutputTokens: c.genConfig.MaxOutputTokens,
		Temperature:     c.genConfig.Temperature,
		TopP:            c.genConfig.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result *GenerateResponse
	backoff := retry.NewFibonacci(500 * time.Millisecond)
	err = retry.Do(ctx, retry.WithMaxRetries(2, backoff), func(ctx context.Context) error {
		result, err = c.generateOnce(ctx, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ModelClient) generateOnce(ctx context.Context, body []byte) (*GenerateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, retry.RetryableError(fmt.Errorf("model service returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, errors.New("model returned an empty completion")
	}

	return &result, nil
}

// Health checks the model service health
func (c *ModelClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model service returned status %d", resp.StatusCode)
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Ready checks if the model service is ready
func (c *ModelClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model service not ready: status %d", resp.StatusCode)
	}

	return nil
}
