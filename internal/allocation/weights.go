package allocation

import (
	"math"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/pkg/logger"
)

// Allocator reshapes target portfolio weights by market score and
// renormalizes them to sum to 1.
// ⭐ SSOT: 가중치 조정은 여기서만
type Allocator struct {
	logger *logger.Logger
}

// NewAllocator creates a weight allocator
func NewAllocator(log *logger.Logger) *Allocator {
	return &Allocator{logger: log}
}

// Adjust returns normalized weights per asset code. A missing, NaN or
// non-positive target weight is recovered as 1.0 before adjustment; a
// degenerate total falls back to an equal split.
func (a *Allocator) Adjust(assets []contracts.Asset, scores map[string]float64) map[string]float64 {
	if len(assets) == 0 {
		return map[string]float64{}
	}

	adjusted := make(map[string]float64, len(assets))
	sum := 0.0

	for _, asset := range assets {
		weight := asset.Weight
		if math.IsNaN(weight) || weight <= 0 {
			a.logger.WithFields(map[string]interface{}{
				"code":   asset.Code,
				"weight": asset.Weight,
			}).Warn("Invalid asset weight, defaulting to 1.0")
			weight = 1.0
		}

		if score, ok := scores[asset.Code]; ok {
			weight *= adjustmentFactor(score)
		}

		adjusted[asset.Code] = weight
		sum += weight
	}

	if sum <= 0 {
		// Degenerate aggregate: equal split keeps the plan generable
		equal := 1.0 / float64(len(assets))
		for _, asset := range assets {
			adjusted[asset.Code] = equal
		}
		return adjusted
	}

	for code, weight := range adjusted {
		adjusted[code] = weight / sum
	}

	return adjusted
}

// adjustmentFactor returns the multiplicative weight adjustment for a score.
// High-score assets are tilted up, low-score assets down.
func adjustmentFactor(score float64) float64 {
	switch {
	case score >= 80:
		return 1.10
	case score >= 65:
		return 1.07
	case score >= 55:
		return 1.03
	case score <= 25:
		return 0.90
	case score <= 35:
		return 0.95
	default:
		return 1.0
	}
}
