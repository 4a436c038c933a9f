package commerce

import "math"

// Simulated bids land within 5-10% of the asking price, above or below.
const (
	MinBidJitterPct = 5.0
	MaxBidJitterPct = 10.0
)

// SimulateBidAmount computes a buyer's bid for an asking price. The two
// random draws are injected so callers stay deterministic in tests:
// jitterDraw and signDraw are uniform in [0,1).
func SimulateBidAmount(askingPrice float64, jitterDraw float64, signDraw float64) float64 {
	pct := MinBidJitterPct + jitterDraw*(MaxBidJitterPct-MinBidJitterPct)
	factor := 1 + pct/100
	if signDraw < 0.5 {
		factor = 1 - pct/100
	}
	return roundMoney(askingPrice * factor)
}

// BidBounds returns the inclusive range a simulated bid may fall in.
func BidBounds(askingPrice float64) (low, high float64) {
	low = roundMoney(askingPrice * (1 - MaxBidJitterPct/100))
	high = roundMoney(askingPrice * (1 + MaxBidJitterPct/100))
	return low, high
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
