package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLoadOrHits(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		load Field[float64]
		hits Field[int]
	}{
		{"positive load", "2.5", ParsedValue(2.5), Field[int]{}},
		{"zero load", "0", ParsedValue(0.0), Field[int]{}},
		{"decimal comma", "1,25", ParsedValue(1.25), Field[int]{}},
		{"negative is hits", "-3", Field[float64]{}, ParsedValue(3)},
		{"hits truncated", "-7.9", Field[float64]{}, ParsedValue(7)},
		{"missing", "-", Field[float64]{}, Field[int]{}},
		{"garbage stays as load fallback", "x", FallbackValue[float64]("x"), Field[int]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, hits := splitLoadOrHits([]string{"1.0", tt.raw}, 1)
			assert.Equal(t, tt.load, load)
			assert.Equal(t, tt.hits, hits)
			assert.False(t, load.IsParsed() && hits.IsParsed())
		})
	}

	t.Run("column past end", func(t *testing.T) {
		load, hits := splitLoadOrHits([]string{"1.0"}, 1)
		assert.True(t, load.IsMissing())
		assert.True(t, hits.IsMissing())
	})
}

func TestSplitHitsOrPressure(t *testing.T) {
	tests := []struct {
		name     string
		params   []string
		hits     Field[int]
		pressure Field[float64]
	}{
		{"hits mode", []string{"1.0", "12", "5", "H"}, ParsedValue(12), Field[float64]{}},
		{"pressure mode", []string{"1.0", "3,5", "5", "P"}, Field[int]{}, ParsedValue(3.5)},
		{"lower case flag", []string{"1.0", "12", "5", "h"}, ParsedValue(12), Field[float64]{}},
		{"unknown flag", []string{"1.0", "12", "5", "X"}, Field[int]{}, Field[float64]{}},
		{"no flag", []string{"1.0", "12", "5"}, Field[int]{}, Field[float64]{}},
		{"bad hits", []string{"1.0", "1.5", "5", "H"}, FallbackValue[int]("1.5"), Field[float64]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, pressure := splitHitsOrPressure(tt.params, 1, 3)
			assert.Equal(t, tt.hits, hits)
			assert.Equal(t, tt.pressure, pressure)
		})
	}
}
