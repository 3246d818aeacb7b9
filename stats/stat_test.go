package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutliers(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected []int
	}{
		"no outliers": {
			y: []float64{0.99, 1.0, 1.01, 1.0, 0.98, 1.02, 1.0, 0.99, 1.01, 1.0},
		},
		"single spike": {
			y:        []float64{0.99, 1.0, 1.01, 1.0, 0.98, 1.02, 1.0, 5.0, 1.01, 1.0},
			expected: []int{7},
		},
		"spike and dip": {
			y:        []float64{0.99, 1.0, 1.01, 1.0, 0.98, 1.02, 0.2, 5.0, 1.01, 1.0},
			expected: []int{6, 7},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, DetectOutliers(td.y, 0.25, 0.75, 1.5))
		})
	}
}
