package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PIIType is the closed category set a column classification can take.
type PIIType string

const (
	PIITypeSSN       PIIType = "SSN"
	PIITypeEmail     PIIType = "EMAIL"
	PIITypePhone     PIIType = "PHONE"
	PIITypeAddress   PIIType = "ADDRESS"
	PIITypeDOB       PIIType = "DOB"
	PIITypeName      PIIType = "NAME"
	PIITypeHashedPII PIIType = "HASHED_PII"
	PIITypeNoPII     PIIType = "NO_PII"
	PIITypeNoData    PIIType = "NO_DATA"
	PIITypeError     PIIType = "ERROR"
	PIITypeUnknown   PIIType = "UNKNOWN"
)

// IsPII reports whether the classification counts as PII. Only an explicit
// NO_PII verdict is safe; NO_DATA, ERROR and UNKNOWN all count as PII, the
// conservative default.
func (t PIIType) IsPII() bool {
	return t != PIITypeNoPII
}

// promptTemplate is the per-column prompt sent to the model. Its length
// feeds the pre-flight cost estimate, so keep it byte-stable.
const promptTemplate = `Analyze this data for PII (Personally Identifiable Information):

Column: %s
Values: %s

Is this PII? What type?
- SSN (Social Security Numbers)
- EMAIL (Email addresses)
- PHONE (Phone numbers)
- ADDRESS (Physical addresses)
- DOB (Date of Birth)
- NAME (Personal names)
- HASHED_PII (Hashed/encrypted PII)
- NO_PII (Not PII)

Answer with just the category (like "EMAIL" or "NO_PII") and a brief reason.`

// BuildPrompt renders the classification prompt for one column, embedding
// the sample values as a JSON array.
func BuildPrompt(columnName string, sample []string) string {
	encoded, _ := json.Marshal(sample)
	return fmt.Sprintf(promptTemplate, columnName, encoded)
}

// classificationRule maps response keywords to a category and its fixed
// confidence. Rules are checked in order and the first hit wins.
type classificationRule struct {
	keywords   []string
	category   PIIType
	confidence float64
}

// The NO_PII rule runs first so category names quoted inside a negative
// explanation do not misclassify the column.
var classificationRules = []classificationRule{
	{[]string{"NO_PII", "NOT PII", "NO PII", "NOT CONSIDERED PII", "IS NOT CONSIDERED PII"}, PIITypeNoPII, 0.8},
	{[]string{"EMAIL"}, PIITypeEmail, 0.9},
	{[]string{"SSN", "SOCIAL SECURITY"}, PIITypeSSN, 0.95},
	{[]string{"PHONE"}, PIITypePhone, 0.85},
	{[]string{"ADDRESS"}, PIITypeAddress, 0.8},
	{[]string{"DOB", "DATE OF BIRTH"}, PIITypeDOB, 0.75},
	{[]string{"NAME"}, PIITypeName, 0.8},
	{[]string{"HASHED"}, PIITypeHashedPII, 0.7},
}

// ParseClassification maps a free-text model completion to a category and
// confidence. Matching is case-insensitive substring search; responses
// that match no rule degrade to UNKNOWN rather than failing.
func ParseClassification(response string) (PIIType, float64) {
	upper := strings.ToUpper(response)

	for _, rule := range classificationRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(upper, keyword) {
				return rule.category, rule.confidence
			}
		}
	}

	return PIITypeUnknown, 0.5
}

// ColumnResult is the immutable outcome of analyzing one column.
type ColumnResult struct {
	Column         string
	Classification PIIType
	Confidence     float64
	Reasoning      string
	Samples        []string
	Cost           CostInfo
}

// NewNoDataResult builds the terminal result for a column with no usable
// values. No model call is made, so the cost is zero.
func NewNoDataResult(columnName string) ColumnResult {
	return ColumnResult{
		Column:         columnName,
		Classification: PIITypeNoData,
		Confidence:     0.0,
		Reasoning:      "Column contains no data",
		Samples:        []string{},
	}
}

// NewErrorResult builds the terminal result for a column whose model call
// failed. The failure stays inside this result; sibling columns proceed.
func NewErrorResult(columnName string, samples []string, err error) ColumnResult {
	return ColumnResult{
		Column:         columnName,
		Classification: PIITypeError,
		Confidence:     0.0,
		Reasoning:      fmt.Sprintf("Error analyzing column: %v", err),
		Samples:        samples,
	}
}
