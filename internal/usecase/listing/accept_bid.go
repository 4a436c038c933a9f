package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
)

type AcceptBidInput struct {
	CatalogID uint64
	BidID     string
}

type AcceptBidResult struct {
	Catalog CatalogItem `json:"catalog"`
	Bid     BidItem     `json:"bid"`
}

// AcceptBid closes the sale: the catalog moves BROADCASTED -> SOLD and the
// accepted bid id is stamped into the listing payload.
func (s *Service) AcceptBid(ctx context.Context, input AcceptBidInput) (AcceptBidResult, error) {
	if ctx == nil {
		return AcceptBidResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return AcceptBidResult{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return AcceptBidResult{}, errors.New("commerce repository is required")
	}
	if s.uow == nil {
		return AcceptBidResult{}, errors.New("unit of work is required")
	}

	bidID := strings.TrimSpace(input.BidID)
	if bidID == "" {
		return AcceptBidResult{}, errors.New("bid id is required")
	}

	catalog, err := s.repo.GetCatalog(ctx, input.CatalogID)
	if err != nil {
		return AcceptBidResult{}, err
	}
	if err := commerce.CheckTransition(catalog.Status, commerce.StatusSold); err != nil {
		return AcceptBidResult{}, err
	}

	bid, err := s.findBid(ctx, input.CatalogID, bidID)
	if err != nil {
		return AcceptBidResult{}, err
	}

	now := nowUTCString()
	listing := catalog.Listing
	listing.AcceptedBidID = bidID

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateCatalogStatus(txCtx, catalog.CatalogID, commerce.StatusBroadcasted, commerce.StatusSold, now); err != nil {
			return err
		}
		return s.repo.UpdateCatalogListing(txCtx, catalog.CatalogID, listing, now)
	}); err != nil {
		return AcceptBidResult{}, err
	}

	catalog.Listing = listing
	catalog.Status = commerce.StatusSold
	catalog.UpdatedAt = now
	bid.Accepted = true

	return AcceptBidResult{
		Catalog: mapCatalogItem(catalog),
		Bid:     bid,
	}, nil
}

func (s *Service) findBid(ctx context.Context, catalogID uint64, bidID string) (BidItem, error) {
	logs, err := s.repo.ListCatalogNetworkLogs(ctx, catalogID, commerce.EventIncomingBid)
	if err != nil {
		return BidItem{}, err
	}

	for _, row := range logs {
		var bid commerce.BidMessage
		if err := json.Unmarshal(row.Payload, &bid); err != nil {
			continue
		}
		if bid.BidID == bidID {
			return mapBidItem(bid, row.CreatedAt), nil
		}
	}
	return BidItem{}, fmt.Errorf("%w: %s", ErrBidNotFound, bidID)
}

func mapBidItem(bid commerce.BidMessage, createdAt string) BidItem {
	return BidItem{
		BidID:     bid.BidID,
		BuyerID:   bid.BuyerID,
		BuyerName: bid.BuyerName,
		Location:  bid.Location,
		Amount:    bid.Amount,
		Currency:  bid.Currency,
		Accepted:  bid.Accepted,
		CreatedAt: createdAt,
	}
}
