package analyzer

import (
	"math"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// ratioEpsilon absorbs float error in minRatio*total, e.g. 0.3*10.
const ratioEpsilon = 1e-9

// ComputeNeeded returns the smallest n >= 0 such that
// (commentCount+n)/(total+n) >= minRatio.
//
// Adding n comment lines grows both counts by n, which gives
// n = ceil((minRatio*total - commentCount) / (1 - minRatio)).
// A minRatio of 1 or more can never be reached by padding and yields 0;
// configuration validation rejects such values before they get here.
func ComputeNeeded(commentCount, total int, minRatio float64) int {
	if minRatio <= 0 || minRatio >= 1 || total <= 0 {
		return 0
	}

	raw := (minRatio*float64(total) - float64(commentCount)) / (1 - minRatio)
	if raw <= ratioEpsilon {
		return 0
	}

	return int(math.Ceil(raw - ratioEpsilon))
}

// Status returns the report status for a needed comment count.
func Status(needComment int) string {
	if needComment > 0 {
		return models.StatusNeedsComments
	}
	return models.StatusOK
}
