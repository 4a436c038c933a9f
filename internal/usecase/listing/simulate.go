package listing

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"setu/internal/domain/commerce"
	"setu/internal/ports"
)

// scheduleBids launches one goroutine per simulated buyer response and
// returns how many were scheduled. Each goroutine sleeps a randomized
// delay, re-checks that the catalog is still BROADCASTED and then records
// the bid. Bids that lose that race are dropped silently.
func (s *Service) scheduleBids(message commerce.BroadcastMessage) int {
	count := 1 + int(s.randFloat()*float64(s.sim.MaxBids))
	if count > s.sim.MaxBids {
		count = s.sim.MaxBids
	}

	buyers := s.buyers.Sample(count, s.randFloat)
	for _, buyer := range buyers {
		s.simWG.Add(1)
		go s.simulateBid(buyer, message)
	}
	return len(buyers)
}

func (s *Service) simulateBid(buyer commerce.Buyer, message commerce.BroadcastMessage) {
	defer s.simWG.Done()

	if !s.sleep(s.simCtx, s.bidDelay()) {
		return
	}

	catalog, err := s.repo.GetCatalog(s.simCtx, message.CatalogID)
	if err != nil || catalog.Status != commerce.StatusBroadcasted {
		return
	}

	now := nowUTCString()
	bid := commerce.BidMessage{
		BidID:     uuid.NewString(),
		MessageID: message.MessageID,
		CatalogID: message.CatalogID,
		BuyerID:   buyer.ID,
		BuyerName: buyer.Name,
		Location:  buyer.Location,
		Amount:    commerce.SimulateBidAmount(message.Listing.Price, s.randFloat(), s.randFloat()),
		Currency:  message.Listing.Currency,
		Timestamp: now,
	}
	payload, err := json.Marshal(bid)
	if err != nil {
		return
	}

	if _, err := s.repo.AppendNetworkLog(s.simCtx, ports.NetworkLogCreate{
		EventType: commerce.EventIncomingBid,
		CatalogID: message.CatalogID,
		Payload:   payload,
		CreatedAt: now,
	}); err != nil {
		return
	}

	s.publishBestEffort(s.simCtx, ports.SubjectCatalogBid, payload)
}

func (s *Service) bidDelay() time.Duration {
	spread := s.sim.MaxDelay - s.sim.MinDelay
	if spread <= 0 {
		return s.sim.MinDelay
	}
	return s.sim.MinDelay + time.Duration(s.randFloat()*float64(spread))
}
