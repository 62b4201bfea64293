package entity

import "fmt"

// DefaultMaxSamples bounds how many values of a column are quoted in a
// classification prompt.
const DefaultMaxSamples = 5

// BuildSample reduces a column's raw values to at most maxSamples strings:
// nil and empty values are dropped, survivors are stringified and
// deduplicated in first-seen order. An empty result means the column has
// no usable data.
func BuildSample(values []any, maxSamples int) []string {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}

	sample := make([]string, 0, maxSamples)
	seen := make(map[string]struct{}, maxSamples)

	for _, v := range values {
		if v == nil {
			continue
		}
		s := stringify(v)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		sample = append(sample, s)
		if len(sample) == maxSamples {
			break
		}
	}

	return sample
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
