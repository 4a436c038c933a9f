package listing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
	"setu/internal/ports"
)

type BroadcastResult struct {
	MessageID     string `json:"message_id"`
	CatalogID     uint64 `json:"catalog_id"`
	Status        string `json:"status"`
	ScheduledBids int    `json:"scheduled_bids"`
}

// Broadcast moves a DRAFT catalog to BROADCASTED, records the outgoing
// message in the network log, mirrors it to publishers and schedules
// simulated buyer bids.
func (s *Service) Broadcast(ctx context.Context, catalogID uint64) (BroadcastResult, error) {
	if ctx == nil {
		return BroadcastResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return BroadcastResult{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return BroadcastResult{}, errors.New("commerce repository is required")
	}
	if s.uow == nil {
		return BroadcastResult{}, errors.New("unit of work is required")
	}

	catalog, err := s.repo.GetCatalog(ctx, catalogID)
	if err != nil {
		return BroadcastResult{}, err
	}
	if err := commerce.CheckTransition(catalog.Status, commerce.StatusBroadcasted); err != nil {
		return BroadcastResult{}, err
	}

	farmer, err := s.repo.GetFarmer(ctx, catalog.FarmerID)
	if err != nil {
		return BroadcastResult{}, err
	}

	now := nowUTCString()
	message := commerce.BroadcastMessage{
		MessageID: uuid.NewString(),
		Domain:    commerce.BroadcastDomain,
		Action:    commerce.ActionCatalogBroadcast,
		CatalogID: catalog.CatalogID,
		Farmer: commerce.FarmerSummary{
			FarmerID:      farmer.FarmerID,
			Name:          farmer.Name,
			Location:      farmer.Location,
			PaymentHandle: farmer.PaymentHandle,
		},
		Listing:   catalog.Listing,
		Timestamp: now,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return BroadcastResult{}, errs.Wrap(err, "encode broadcast message")
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateCatalogStatus(txCtx, catalog.CatalogID, commerce.StatusDraft, commerce.StatusBroadcasted, now); err != nil {
			return err
		}
		_, err := s.repo.AppendNetworkLog(txCtx, ports.NetworkLogCreate{
			EventType: commerce.EventOutgoingCatalog,
			CatalogID: catalog.CatalogID,
			Payload:   payload,
			CreatedAt: now,
		})
		return err
	}); err != nil {
		return BroadcastResult{}, err
	}

	s.publishBestEffort(ctx, ports.SubjectCatalogBroadcast, payload)
	scheduled := s.scheduleBids(message)

	return BroadcastResult{
		MessageID:     message.MessageID,
		CatalogID:     catalog.CatalogID,
		Status:        string(commerce.StatusBroadcasted),
		ScheduledBids: scheduled,
	}, nil
}
