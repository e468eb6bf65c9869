package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

func TestComputeNeeded(t *testing.T) {
	tests := []struct {
		name     string
		comments int
		total    int
		minRatio float64
		want     int
	}{
		{name: "no comments", comments: 0, total: 8, minRatio: 0.25, want: 3},
		{name: "exactly at minimum", comments: 2, total: 8, minRatio: 0.25, want: 0},
		{name: "above minimum", comments: 5, total: 8, minRatio: 0.25, want: 0},
		{name: "float noise at minimum", comments: 3, total: 10, minRatio: 0.3, want: 0},
		{name: "float noise just below", comments: 2, total: 10, minRatio: 0.3, want: 2},
		{name: "empty function", comments: 0, total: 0, minRatio: 0.25, want: 0},
		{name: "zero minimum", comments: 0, total: 8, minRatio: 0, want: 0},
		{name: "negative minimum", comments: 0, total: 8, minRatio: -0.5, want: 0},
		{name: "minimum of one", comments: 0, total: 8, minRatio: 1, want: 0},
		{name: "high minimum", comments: 1, total: 10, minRatio: 0.9, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeNeeded(tt.comments, tt.total, tt.minRatio))
		})
	}
}

func TestComputeNeededProperties(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for comments := 0; comments <= total; comments++ {
			prev := 0
			for k := 0; k < 20; k++ {
				minRatio := float64(k) / 20
				n := ComputeNeeded(comments, total, minRatio)

				assert.GreaterOrEqual(t, n, 0)
				assert.GreaterOrEqual(t, n, prev, "monotonic in minRatio: c=%d t=%d r=%v", comments, total, minRatio)
				prev = n

				ratio := float64(comments) / float64(total)
				if ratio >= minRatio {
					assert.Equal(t, 0, n, "already satisfied: c=%d t=%d r=%v", comments, total, minRatio)
				}

				padded := float64(comments+n) / float64(total+n)
				assert.GreaterOrEqual(t, padded+1e-12, minRatio, "c=%d t=%d r=%v n=%d", comments, total, minRatio, n)

				if n > 0 {
					fewer := float64(comments+n-1) / float64(total+n-1)
					assert.Less(t, fewer, minRatio, "not minimal: c=%d t=%d r=%v n=%d", comments, total, minRatio, n)
				}
			}
		}
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, models.StatusOK, Status(0))
	assert.Equal(t, models.StatusNeedsComments, Status(3))
}
