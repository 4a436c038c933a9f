package listing

import (
	"context"
	"errors"
	"strings"

	"setu/internal/errs"
	"setu/internal/ports"
)

type RegisterFarmerInput struct {
	Name          string
	Location      string
	Language      string
	PaymentHandle string
}

// RegisterFarmer creates a farmer profile the demo attaches catalogs to.
func (s *Service) RegisterFarmer(ctx context.Context, input RegisterFarmerInput) (FarmerItem, error) {
	if ctx == nil {
		return FarmerItem{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return FarmerItem{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return FarmerItem{}, errors.New("commerce repository is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return FarmerItem{}, errNameRequired
	}

	now := nowUTCString()
	created, err := s.repo.CreateFarmer(ctx, ports.Farmer{
		Name:          name,
		Location:      strings.TrimSpace(input.Location),
		Language:      strings.TrimSpace(input.Language),
		PaymentHandle: strings.TrimSpace(input.PaymentHandle),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return FarmerItem{}, err
	}
	return mapFarmerItem(created), nil
}

func mapFarmerItem(farmer ports.Farmer) FarmerItem {
	return FarmerItem{
		FarmerID:      farmer.FarmerID,
		Name:          farmer.Name,
		Location:      farmer.Location,
		Language:      farmer.Language,
		PaymentHandle: farmer.PaymentHandle,
		CreatedAt:     farmer.CreatedAt,
		UpdatedAt:     farmer.UpdatedAt,
	}
}
