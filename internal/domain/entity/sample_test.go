package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSample(t *testing.T) {
	t.Run("dedupes, keeps order and truncates", func(t *testing.T) {
		values := []any{"a", "a", "", nil, "b", "c", "d", "e", "f"}

		sample := BuildSample(values, 5)

		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, sample)
	})

	t.Run("duplicate positions do not change the result", func(t *testing.T) {
		front := BuildSample([]any{"a", "a", "b", "c", "d", "e", "f"}, 5)
		spread := BuildSample([]any{"a", "b", "a", "c", "d", "a", "e", "f"}, 5)

		assert.Equal(t, front, spread)
	})

	t.Run("empty when no usable values", func(t *testing.T) {
		assert.Empty(t, BuildSample(nil, 5))
		assert.Empty(t, BuildSample([]any{}, 5))
		assert.Empty(t, BuildSample([]any{nil, "", nil, ""}, 5))
	})

	t.Run("stringifies non-string values", func(t *testing.T) {
		sample := BuildSample([]any{42, 3.14, true}, 5)

		assert.Equal(t, []string{"42", "3.14", "true"}, sample)
	})

	t.Run("never exceeds maxSamples", func(t *testing.T) {
		values := make([]any, 0, 100)
		for i := 0; i < 100; i++ {
			values = append(values, i)
		}

		sample := BuildSample(values, 5)

		assert.Len(t, sample, 5)
		assert.Equal(t, []string{"0", "1", "2", "3", "4"}, sample)
	})

	t.Run("falls back to the default bound for non-positive limits", func(t *testing.T) {
		values := []any{"a", "b", "c", "d", "e", "f", "g"}

		assert.Len(t, BuildSample(values, 0), DefaultMaxSamples)
		assert.Len(t, BuildSample(values, -3), DefaultMaxSamples)
	})
}
