package listing

import (
	"context"
	"encoding/json"
	"errors"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
	"setu/internal/ports"
)

// ListFarmers returns every registered farmer profile.
func (s *Service) ListFarmers(ctx context.Context) ([]FarmerItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("commerce repository is required")
	}

	farmers, err := s.repo.ListFarmers(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FarmerItem, 0, len(farmers))
	for _, farmer := range farmers {
		items = append(items, mapFarmerItem(farmer))
	}
	return items, nil
}

func (s *Service) GetFarmer(ctx context.Context, farmerID uint64) (FarmerItem, error) {
	if ctx == nil {
		return FarmerItem{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return FarmerItem{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return FarmerItem{}, errors.New("commerce repository is required")
	}

	farmer, err := s.repo.GetFarmer(ctx, farmerID)
	if err != nil {
		return FarmerItem{}, err
	}
	return mapFarmerItem(farmer), nil
}

// ListCatalogs returns catalog summaries, optionally scoped to a farmer
// and/or a status.
func (s *Service) ListCatalogs(ctx context.Context, farmerID uint64, status string) ([]CatalogItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("commerce repository is required")
	}

	filter := ports.CatalogFilter{FarmerID: farmerID}
	if status != "" {
		parsed, err := commerce.ParseCatalogStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = parsed
	}

	catalogs, err := s.repo.ListCatalogs(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CatalogItem, 0, len(catalogs))
	for _, catalog := range catalogs {
		items = append(items, mapCatalogItem(catalog))
	}
	return items, nil
}

// GetCatalog returns catalog detail together with the bids it received.
func (s *Service) GetCatalog(ctx context.Context, catalogID uint64) (CatalogDetail, error) {
	if ctx == nil {
		return CatalogDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CatalogDetail{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return CatalogDetail{}, errors.New("commerce repository is required")
	}

	catalog, err := s.repo.GetCatalog(ctx, catalogID)
	if err != nil {
		return CatalogDetail{}, err
	}

	farmer, err := s.repo.GetFarmer(ctx, catalog.FarmerID)
	if err != nil {
		return CatalogDetail{}, err
	}

	logs, err := s.repo.ListCatalogNetworkLogs(ctx, catalogID, commerce.EventIncomingBid)
	if err != nil {
		return CatalogDetail{}, err
	}

	bids := make([]BidItem, 0, len(logs))
	for _, row := range logs {
		var bid commerce.BidMessage
		if err := json.Unmarshal(row.Payload, &bid); err != nil {
			continue
		}
		if bid.BidID == catalog.Listing.AcceptedBidID {
			bid.Accepted = true
		}
		bids = append(bids, mapBidItem(bid, row.CreatedAt))
	}

	return CatalogDetail{
		CatalogItem: mapCatalogItem(catalog),
		FarmerName:  farmer.Name,
		Bids:        bids,
	}, nil
}

// NetworkFeed returns network log rows after a cursor, oldest first. The
// debug log viewer polls this.
func (s *Service) NetworkFeed(ctx context.Context, afterLogID uint64, limit int) ([]NetworkLogItem, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("commerce repository is required")
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	logs, err := s.repo.ListNetworkLogsAfter(ctx, afterLogID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]NetworkLogItem, 0, len(logs))
	for _, row := range logs {
		items = append(items, NetworkLogItem{
			LogID:     row.LogID,
			EventType: string(row.EventType),
			CatalogID: row.CatalogID,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

// Scenarios returns the canned voice transcripts for the demo picker.
func (s *Service) Scenarios(ctx context.Context) ([]commerce.VoiceScenario, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	return commerce.DemoScenarios()
}
