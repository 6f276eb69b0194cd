package dashboard

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantMin float64
		wantMax float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4.2}, 4.2, 4.2},
		{"ordered", []float64{1, 2, 3}, 1, 3},
		{"unordered", []float64{3.5, 1.2, 2.8}, 1.2, 3.5},
		{"flat", []float64{2, 2, 2}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minVal, maxVal := findMinMax(tt.data)
			assert.Equal(t, tt.wantMin, minVal)
			assert.Equal(t, tt.wantMax, maxVal)
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 0.0, normalizeValue(1, 1, 5))
	assert.Equal(t, 1.0, normalizeValue(5, 1, 5))
	assert.Equal(t, 0.5, normalizeValue(3, 1, 5))
	// Degenerate range pins to mid-height
	assert.Equal(t, 0.5, normalizeValue(2, 2, 2))
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	result := RenderSparkline(data, 8, lipgloss.Color("#00FFFF"))
	assert.NotEmpty(t, result)

	// Lowest and highest blocks must both appear across the full range.
	assert.Contains(t, result, "▁")
	assert.Contains(t, result, "█")
}

func TestRenderSparklineEmpty(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, ColorGraph))
	assert.Empty(t, RenderSparkline([]float64{1, 2}, 0, ColorGraph))
}

func TestResampleData(t *testing.T) {
	t.Run("same size passthrough", func(t *testing.T) {
		data := []float64{1, 2, 3}
		assert.Equal(t, data, resampleData(data, 3))
	})

	t.Run("single value fills", func(t *testing.T) {
		result := resampleData([]float64{7}, 4)
		assert.Equal(t, []float64{7, 7, 7, 7}, result)
	})

	t.Run("downsampling preserves peak", func(t *testing.T) {
		data := []float64{1, 1, 9, 1, 1, 1, 1, 1}
		result := resampleData(data, 4)
		assert.Len(t, result, 4)

		found := false
		for _, v := range result {
			if v == 9 {
				found = true
			}
		}
		assert.True(t, found, "peak should survive downsampling")
	})

	t.Run("upsampling interpolates", func(t *testing.T) {
		result := resampleData([]float64{0, 10}, 3)
		assert.Equal(t, []float64{0, 5, 10}, result)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, resampleData(nil, 5))
		assert.Nil(t, resampleData([]float64{1}, 0))
	})
}
