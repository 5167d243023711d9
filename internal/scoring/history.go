package scoring

import "sync"

// priceWindow is the bounded FIFO used for cumulative-drawdown detection
const priceWindow = 20

// PriceHistory is an injected, process-lifetime store of recent prices per
// instrument code. Mutations are serialized per store; a bounded window keeps
// memory flat under long-running operation.
// ⭐ SSOT: 가격 히스토리는 이 저장소에서만 관리
type PriceHistory struct {
	mu     sync.Mutex
	prices map[string][]float64
}

// NewPriceHistory creates an empty price history store
func NewPriceHistory() *PriceHistory {
	return &PriceHistory{
		prices: make(map[string][]float64),
	}
}

// Append records a price for code, evicting the oldest entry beyond the window
func (h *PriceHistory) Append(code string, price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	window := h.prices[code]
	if len(window) >= priceWindow {
		window = window[1:]
	}
	h.prices[code] = append(window, price)
}

// CumulativeDrawdown returns (latest / max of all prior prices) - 1 for code,
// or nil when fewer than 2 points exist.
func (h *PriceHistory) CumulativeDrawdown(code string) *float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	window := h.prices[code]
	if len(window) < 2 {
		return nil
	}

	maxPrior := window[0]
	for _, p := range window[:len(window)-1] {
		if p > maxPrior {
			maxPrior = p
		}
	}
	if maxPrior <= 0 {
		return nil
	}

	dd := window[len(window)-1]/maxPrior - 1.0
	return &dd
}

// Len returns the number of stored points for code
func (h *PriceHistory) Len(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.prices[code])
}
