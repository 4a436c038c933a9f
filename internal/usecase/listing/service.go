package listing

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"setu/internal/domain/commerce"
	"setu/internal/ports"
)

var (
	errNameRequired       = errors.New("farmer name is required")
	errTranscriptRequired = errors.New("transcript is required")

	// ErrBidNotFound is returned when an accept references a bid id the
	// catalog never received.
	ErrBidNotFound = errors.New("bid not found for catalog")
)

// SimulatorSettings tunes the fake buyer network. Delays only pace the
// demo UI; they carry no coordination meaning.
type SimulatorSettings struct {
	MaxBids  int
	MinDelay time.Duration
	MaxDelay time.Duration
}

type Service struct {
	repo       ports.CommerceRepository
	uow        ports.UnitOfWork
	cache      ports.Cache
	translator ports.Translator
	publishers []ports.NetworkPublisher
	buyers     commerce.BuyerNetwork
	sim        SimulatorSettings

	// simCtx bounds background bid goroutines; request contexts are
	// canceled as soon as the broadcast response is written.
	simCtx    context.Context
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) bool
	simWG     sync.WaitGroup
}

// NewService wires listing usecases with persistence, the translator and
// the simulated buyer network. translator may be nil; translation then
// always uses the fallback parser.
func NewService(
	simCtx context.Context,
	repo ports.CommerceRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	translator ports.Translator,
	publishers []ports.NetworkPublisher,
	buyers commerce.BuyerNetwork,
	sim SimulatorSettings,
) *Service {
	if simCtx == nil {
		simCtx = context.Background()
	}
	if sim.MaxBids <= 0 {
		sim.MaxBids = 3
	}
	if sim.MaxDelay < sim.MinDelay {
		sim.MaxDelay = sim.MinDelay
	}

	return &Service{
		repo:       repo,
		uow:        uow,
		cache:      cache,
		translator: translator,
		publishers: publishers,
		buyers:     buyers,
		sim:        sim,
		simCtx:     simCtx,
		randFloat:  rand.Float64,
		sleep:      sleepContext,
	}
}

type FarmerItem struct {
	FarmerID      uint64 `json:"farmer_id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Language      string `json:"language"`
	PaymentHandle string `json:"payment_handle"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type CatalogItem struct {
	CatalogID uint64           `json:"catalog_id"`
	FarmerID  uint64           `json:"farmer_id"`
	Listing   commerce.Listing `json:"listing"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

type BidItem struct {
	BidID     string  `json:"bid_id"`
	BuyerID   string  `json:"buyer_id"`
	BuyerName string  `json:"buyer_name"`
	Location  string  `json:"location,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Accepted  bool    `json:"accepted"`
	CreatedAt string  `json:"created_at"`
}

type CatalogDetail struct {
	CatalogItem
	FarmerName string    `json:"farmer_name"`
	Bids       []BidItem `json:"bids"`
}

type NetworkLogItem struct {
	LogID     uint64          `json:"log_id"`
	EventType string          `json:"event_type"`
	CatalogID uint64          `json:"catalog_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"created_at"`
}

// WaitForSimulations blocks until all scheduled bid goroutines finish.
// Used by graceful shutdown and tests.
func (s *Service) WaitForSimulations() {
	s.simWG.Wait()
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, 0)
}

func (s *Service) publishBestEffort(ctx context.Context, subject string, payload []byte) {
	for _, publisher := range s.publishers {
		if publisher == nil {
			continue
		}
		_ = publisher.Publish(ctx, subject, payload)
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
