package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClassification(t *testing.T) {
	t.Run("matches each category keyword", func(t *testing.T) {
		cases := []struct {
			response   string
			category   PIIType
			confidence float64
		}{
			{"EMAIL - looks like an email address", PIITypeEmail, 0.9},
			{"These are SSN values", PIITypeSSN, 0.95},
			{"social security numbers", PIITypeSSN, 0.95},
			{"PHONE - US phone numbers", PIITypePhone, 0.85},
			{"ADDRESS - street addresses", PIITypeAddress, 0.8},
			{"DOB - birth dates", PIITypeDOB, 0.75},
			{"date of birth values", PIITypeDOB, 0.75},
			{"NAME - personal names", PIITypeName, 0.8},
			{"hashed identifiers", PIITypeHashedPII, 0.7},
			{"NO_PII - internal ids", PIITypeNoPII, 0.8},
			{"This is not considered PII", PIITypeNoPII, 0.8},
		}

		for _, c := range cases {
			category, confidence := ParseClassification(c.response)
			assert.Equal(t, c.category, category, "response %q", c.response)
			assert.Equal(t, c.confidence, confidence, "response %q", c.response)
		}
	})

	t.Run("NO_PII wins over category names quoted in the explanation", func(t *testing.T) {
		category, confidence := ParseClassification("This is NOT PII, unlike an EMAIL example")

		assert.Equal(t, PIITypeNoPII, category)
		assert.Equal(t, 0.8, confidence)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		category, _ := ParseClassification("this column holds email addresses")

		assert.Equal(t, PIITypeEmail, category)
	})

	t.Run("unmatched responses degrade to UNKNOWN", func(t *testing.T) {
		category, confidence := ParseClassification("the model rambled about something else")

		assert.Equal(t, PIITypeUnknown, category)
		assert.Equal(t, 0.5, confidence)
	})
}

func TestPIIType_IsPII(t *testing.T) {
	t.Run("only NO_PII is safe", func(t *testing.T) {
		assert.False(t, PIITypeNoPII.IsPII())
	})

	t.Run("everything else counts as PII", func(t *testing.T) {
		types := []PIIType{
			PIITypeSSN, PIITypeEmail, PIITypePhone, PIITypeAddress, PIITypeDOB,
			PIITypeName, PIITypeHashedPII, PIITypeNoData, PIITypeError, PIITypeUnknown,
		}
		for _, typ := range types {
			assert.True(t, typ.IsPII(), "type %s", typ)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("embeds the column name and JSON samples", func(t *testing.T) {
		prompt := BuildPrompt("email", []string{"john@test.com", "jane@test.com"})

		assert.Contains(t, prompt, "Column: email")
		assert.Contains(t, prompt, `Values: ["john@test.com","jane@test.com"]`)
	})

	t.Run("lists every target category", func(t *testing.T) {
		prompt := BuildPrompt("col", []string{"v"})

		for _, category := range []string{"SSN", "EMAIL", "PHONE", "ADDRESS", "DOB", "NAME", "HASHED_PII", "NO_PII"} {
			assert.Contains(t, prompt, "- "+category)
		}
	})

	t.Run("is deterministic for identical input", func(t *testing.T) {
		a := BuildPrompt("phone", []string{"555-0100"})
		b := BuildPrompt("phone", []string{"555-0100"})

		assert.Equal(t, a, b)
		assert.True(t, strings.HasPrefix(a, "Analyze this data for PII"))
	})
}

func TestNewNoDataResult(t *testing.T) {
	result := NewNoDataResult("empty_col")

	assert.Equal(t, "empty_col", result.Column)
	assert.Equal(t, PIITypeNoData, result.Classification)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, "Column contains no data", result.Reasoning)
	assert.Empty(t, result.Samples)
	assert.Zero(t, result.Cost.TotalTokens)
	assert.Zero(t, result.Cost.TotalCostUSD)
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("phone", []string{"555-0100"}, assert.AnError)

	assert.Equal(t, PIITypeError, result.Classification)
	assert.Zero(t, result.Confidence)
	assert.Contains(t, result.Reasoning, "Error analyzing column:")
	assert.Contains(t, result.Reasoning, assert.AnError.Error())
	assert.Equal(t, []string{"555-0100"}, result.Samples)
	assert.Zero(t, result.Cost.TotalCostUSD)
}
