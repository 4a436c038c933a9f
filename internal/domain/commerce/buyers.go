package commerce

import (
	_ "embed"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed buyers.toml
var defaultBuyersTOML []byte

// Buyer is one participant of the simulated open network.
type Buyer struct {
	ID       string `toml:"id" json:"id"`
	Name     string `toml:"name" json:"name"`
	Location string `toml:"location" json:"location"`
}

// BuyerNetwork is the static buyer roster the simulator draws from.
type BuyerNetwork struct {
	Buyers []Buyer `toml:"buyers" json:"buyers"`
}

// DefaultBuyerNetwork returns the embedded demo roster.
func DefaultBuyerNetwork() (BuyerNetwork, error) {
	return decodeBuyerNetwork(defaultBuyersTOML)
}

// LoadBuyerNetwork reads a roster from a TOML file.
func LoadBuyerNetwork(path string) (BuyerNetwork, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BuyerNetwork{}, err
	}
	return decodeBuyerNetwork(raw)
}

func decodeBuyerNetwork(raw []byte) (BuyerNetwork, error) {
	var network BuyerNetwork
	if err := toml.Unmarshal(raw, &network); err != nil {
		return BuyerNetwork{}, err
	}
	if len(network.Buyers) == 0 {
		return BuyerNetwork{}, ErrNoBuyers
	}
	return network, nil
}

// Sample returns up to n distinct buyers. The shuffle draw is injected the
// same way as in SimulateBidAmount; draws[i] is uniform in [0,1).
func (n BuyerNetwork) Sample(count int, draw func() float64) []Buyer {
	if count <= 0 || len(n.Buyers) == 0 {
		return nil
	}
	if count > len(n.Buyers) {
		count = len(n.Buyers)
	}

	pool := make([]Buyer, len(n.Buyers))
	copy(pool, n.Buyers)

	// Fisher-Yates over the prefix we need.
	for i := 0; i < count; i++ {
		j := i + int(draw()*float64(len(pool)-i))
		if j >= len(pool) {
			j = len(pool) - 1
		}
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}
