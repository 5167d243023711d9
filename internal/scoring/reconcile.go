package scoring

import "math"

// Reconcile adjusts the four component scores so that
// ⌊valuation⌋+⌊trend⌋+⌊volatility⌋+⌊special⌋ == target.
//
// Downstream consumers floor each component independently for display, so
// without this step the displayed components can drift from the displayed
// total. The adjustment is deterministic: candidates are tried in priority
// order {special, volatility, trend, valuation}; an increase goes to the
// first component whose fractional part is below 0.5, a decrease to the
// first whose fractional part is at least 0.5 and whose integer part covers
// the deficit. When no candidate qualifies, an increase lands on volatility
// and a decrease on the numerically largest component. Components never go
// below 0.
func Reconcile(valuation, trend, volatility, special float64, target int) (float64, float64, float64, float64) {
	comps := []*float64{&special, &volatility, &trend, &valuation}

	sum := 0
	for _, c := range comps {
		sum += int(math.Floor(*c))
	}

	diff := target - sum
	if diff > 0 {
		adjusted := false
		for _, c := range comps {
			if frac(*c) < 0.5 {
				*c = math.Floor(*c) + float64(diff)
				adjusted = true
				break
			}
		}
		if !adjusted {
			volatility = math.Floor(volatility) + float64(diff)
		}
	} else if diff < 0 {
		deficit := float64(-diff)
		adjusted := false
		for _, c := range comps {
			if frac(*c) >= 0.5 && math.Floor(*c) >= deficit {
				*c = math.Floor(*c) - deficit
				adjusted = true
				break
			}
		}
		if !adjusted {
			// fall back to the largest component that can absorb the deficit
			var largest *float64
			for _, c := range comps {
				if math.Floor(*c) >= deficit && (largest == nil || *c > *largest) {
					largest = c
				}
			}
			if largest != nil {
				*largest = math.Floor(*largest) - deficit
			}
		}
	}

	for _, c := range comps {
		if *c < 0 {
			*c = 0
		}
	}

	return valuation, trend, volatility, special
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}
