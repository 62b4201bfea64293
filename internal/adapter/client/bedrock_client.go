package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// titanRequest is the InvokeModel body for Titan text models.
type titanRequest struct {
	InputText            string         `json:"inputText"`
	TextGenerationConfig titanGenConfig `json:"textGenerationConfig"`
}

type titanGenConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

// BedrockClient invokes a Titan text model through AWS Bedrock.
type BedrockClient struct {
	runtime   *bedrockruntime.Client
	modelID   string
	genConfig GenerationConfig
}

// NewBedrockClient creates a Bedrock-backed text generator. Credentials
// come from the default AWS provider chain.
func NewBedrockClient(ctx context.Context, region, modelID string, genConfig GenerationConfig) (*BedrockClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockClient{
		runtime:   bedrockruntime.NewFromConfig(awsCfg),
		modelID:   modelID,
		genConfig: genConfig,
	}, nil
}

// Generate invokes the model once and returns the trimmed completion text.
func (c *BedrockClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(titanRequest{
		InputText: prompt,
		TextGenerationConfig: titanGenConfig{
			MaxTokenCount: c.genConfig.MaxOutputTokens,
			Temperature:   c.genConfig.Temperature,
			TopP:          c.genConfig.TopP,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke model %s: %w", c.modelID, err)
	}

	var result titanResponse
	if err := json.Unmarshal(out.Body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Results) == 0 || strings.TrimSpace(result.Results[0].OutputText) == "" {
		return "", fmt.Errorf("model %s returned no output text", c.modelID)
	}

	return strings.TrimSpace(result.Results[0].OutputText), nil
}

// Ready reports whether the transport is usable. InvokeModel has no cheap
// probe, so a constructed client with resolved credentials counts as ready.
func (c *BedrockClient) Ready(_ context.Context) error {
	if c.runtime == nil {
		return errors.New("bedrock client not configured")
	}
	return nil
}
