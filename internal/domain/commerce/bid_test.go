package commerce

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSimulateBidAmountBounds(t *testing.T) {
	const asking = 2000.0
	low, high := BidBounds(asking)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		amount := SimulateBidAmount(asking, rng.Float64(), rng.Float64())
		if amount < low || amount > high {
			t.Fatalf("SimulateBidAmount() = %v, want within [%v, %v]", amount, low, high)
		}
	}
}

func TestSimulateBidAmountSign(t *testing.T) {
	const asking = 1000.0

	below := SimulateBidAmount(asking, 0, 0)
	if below != 950 {
		t.Fatalf("SimulateBidAmount(min jitter, below) = %v, want 950", below)
	}

	above := SimulateBidAmount(asking, 0, 0.9)
	if above != 1050 {
		t.Fatalf("SimulateBidAmount(min jitter, above) = %v, want 1050", above)
	}

	almostMax := SimulateBidAmount(asking, 0.999999, 0.9)
	if almostMax <= 1050 || almostMax > 1100 {
		t.Fatalf("SimulateBidAmount(max jitter, above) = %v, want in (1050, 1100]", almostMax)
	}
}

func TestSimulateBidAmountRounding(t *testing.T) {
	amount := SimulateBidAmount(333.33, 0.5, 0.9)
	cents := amount * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		t.Fatalf("SimulateBidAmount() = %v, want two decimal places", amount)
	}
}
