package entity

import (
	"math"
	"regexp"
	"strings"
)

// AWS Bedrock Titan Text Express v1 pricing (as of 2025), USD per 1K tokens.
const (
	DefaultInputCostPer1K  = 0.0008
	DefaultOutputCostPer1K = 0.0016
)

// Assumed character counts for pre-flight estimates: the prompt template,
// an average column name, and an average model reply.
const (
	estimateTemplateChars   = 200
	estimateColumnNameChars = 15
	estimateResponseChars   = 50
)

// charsPerToken is AWS's stated average for English text. It is a
// heuristic, not the model's real tokenizer.
const charsPerToken = 4.7

// CostInfo holds the token counts and USD cost of one or more model calls.
type CostInfo struct {
	InputTokens   int     `json:"input_tokens"`
	OutputTokens  int     `json:"output_tokens"`
	TotalTokens   int     `json:"total_tokens"`
	InputCostUSD  float64 `json:"input_cost_usd"`
	OutputCostUSD float64 `json:"output_cost_usd"`
	TotalCostUSD  float64 `json:"total_cost_usd"`
}

// Pricing is the per-1K-token rate table for the configured model.
type Pricing struct {
	InputCostPer1K  float64
	OutputCostPer1K float64
}

// DefaultPricing returns the Titan Text Express v1 rate table.
func DefaultPricing() Pricing {
	return Pricing{
		InputCostPer1K:  DefaultInputCostPer1K,
		OutputCostPer1K: DefaultOutputCostPer1K,
	}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// EstimateTokens estimates the token count of text by collapsing whitespace
// runs and dividing the character count by 4.7. Rounds up so cost estimates
// stay conservative; any non-empty text counts as at least one token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	cleaned := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	tokens := int(float64(len(cleaned))/charsPerToken) + 1
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// CalculateCost prices the given token counts. Input and output costs are
// rounded to 6 decimals individually; the total is the rounded sum of the
// unrounded parts, so it can differ from the sum of the displayed figures
// by up to 1e-6.
func (p Pricing) CalculateCost(inputTokens, outputTokens int) CostInfo {
	inputCost := float64(inputTokens) / 1000 * p.InputCostPer1K
	outputCost := float64(outputTokens) / 1000 * p.OutputCostPer1K

	return CostInfo{
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TotalTokens:   inputTokens + outputTokens,
		InputCostUSD:  RoundUSD(inputCost),
		OutputCostUSD: RoundUSD(outputCost),
		TotalCostUSD:  RoundUSD(inputCost + outputCost),
	}
}

// EstimateBatchCost predicts the cost of analyzing columnCount columns
// without making any model calls. Each hypothetical column contributes the
// template plus an average column name plus its sample values on input,
// and a fixed-length reply on output.
func (p Pricing) EstimateBatchCost(columnCount, avgSamplesPerColumn, avgSampleLength int) CostInfo {
	var totalInputTokens, totalOutputTokens int

	for i := 0; i < columnCount; i++ {
		inputChars := estimateTemplateChars + estimateColumnNameChars + avgSamplesPerColumn*avgSampleLength
		totalInputTokens += EstimateTokens(strings.Repeat("x", inputChars))
		totalOutputTokens += EstimateTokens(strings.Repeat("x", estimateResponseChars))
	}

	return p.CalculateCost(totalInputTokens, totalOutputTokens)
}

// RoundUSD rounds a dollar amount to 6 decimal places, the precision used
// everywhere costs are reported.
func RoundUSD(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
