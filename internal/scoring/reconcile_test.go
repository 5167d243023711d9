package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floorSum(vals ...float64) int {
	sum := 0
	for _, v := range vals {
		sum += int(math.Floor(v))
	}
	return sum
}

func TestReconcile_NoAdjustmentNeeded(t *testing.T) {
	v, tr, vo, sp := Reconcile(20, 15, 10, 5, 50)

	assert.Equal(t, 20.0, v)
	assert.Equal(t, 15.0, tr)
	assert.Equal(t, 10.0, vo)
	assert.Equal(t, 5.0, sp)
}

func TestReconcile_IncreasePrefersLowFraction(t *testing.T) {
	// floors sum to 47, target 48: special (frac 0.2 < 0.5) takes the point
	v, tr, vo, sp := Reconcile(20.6, 15.7, 8.8, 4.2, 48)

	assert.Equal(t, 5.0, sp)
	assert.Equal(t, 48, floorSum(v, tr, vo, sp))
}

func TestReconcile_IncreaseFallsBackToVolatility(t *testing.T) {
	// Every fraction >= 0.5: volatility absorbs the increase
	v, tr, vo, sp := Reconcile(20.6, 15.7, 8.8, 4.9, 48)

	assert.Equal(t, 9.0, vo)
	assert.Equal(t, 48, floorSum(v, tr, vo, sp))
}

func TestReconcile_DecreasePrefersHighFraction(t *testing.T) {
	// floors sum to 49, target 48: special (frac 0.9) gives up the point
	v, tr, vo, sp := Reconcile(20.2, 15.1, 9.3, 5.9, 48)

	assert.Equal(t, 4.0, sp)
	assert.Equal(t, 48, floorSum(v, tr, vo, sp))
}

func TestReconcile_DecreaseFallsBackToLargest(t *testing.T) {
	// No fraction >= 0.5: the largest component absorbs the decrease
	v, tr, vo, sp := Reconcile(25.2, 15.1, 9.3, 5.4, 52)

	assert.Equal(t, 23.0, v)
	assert.Equal(t, 52, floorSum(v, tr, vo, sp))
}

func TestReconcile_NeverNegative(t *testing.T) {
	v, tr, vo, sp := Reconcile(0.2, 0.1, 0.3, 0.4, 0)

	for _, c := range []float64{v, tr, vo, sp} {
		assert.GreaterOrEqual(t, c, 0.0)
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	a1, b1, c1, d1 := Reconcile(12.4, 17.6, 9.1, 3.3, 44)
	a2, b2, c2, d2 := Reconcile(12.4, 17.6, 9.1, 3.3, 44)

	assert.Equal(t, []float64{a1, b1, c1, d1}, []float64{a2, b2, c2, d2})
}

func TestReconcile_RandomizedInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		valuation := rng.Float64() * 30
		trend := rng.Float64() * 30
		volatility := rng.Float64() * 20
		special := rng.Float64() * 20

		total := clamp(valuation+trend+volatility+special, 0, 100)
		target := int(math.Floor(total))

		v, tr, vo, sp := Reconcile(valuation, trend, volatility, special, target)

		assert.Equal(t, target, floorSum(v, tr, vo, sp),
			"raw=%v/%v/%v/%v target=%d", valuation, trend, volatility, special, target)
	}
}
