package listing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
	"setu/internal/ports"
)

type TranslateInput struct {
	FarmerID   uint64
	Transcript string
	Language   string
}

// Translate turns a voice transcript into a DRAFT catalog owned by the
// farmer. Hosted translation is attempted first (memoized by transcript
// digest); any upstream failure degrades to the deterministic parser, so
// translation never fails for upstream reasons.
func (s *Service) Translate(ctx context.Context, input TranslateInput) (CatalogItem, error) {
	if ctx == nil {
		return CatalogItem{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CatalogItem{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return CatalogItem{}, errors.New("commerce repository is required")
	}
	if s.uow == nil {
		return CatalogItem{}, errors.New("unit of work is required")
	}

	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return CatalogItem{}, errTranscriptRequired
	}
	language := strings.TrimSpace(input.Language)

	if _, err := s.repo.GetFarmer(ctx, input.FarmerID); err != nil {
		return CatalogItem{}, err
	}

	listing := s.translateListing(ctx, transcript, language)
	if err := listing.Validate(); err != nil {
		return CatalogItem{}, err
	}

	now := nowUTCString()
	var created ports.Catalog
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateCatalog(txCtx, ports.Catalog{
			FarmerID:  input.FarmerID,
			Listing:   listing,
			Status:    commerce.StatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return err
	}); err != nil {
		return CatalogItem{}, err
	}

	return mapCatalogItem(created), nil
}

func (s *Service) translateListing(ctx context.Context, transcript string, language string) commerce.Listing {
	if s.translator == nil {
		return commerce.ParseTranscript(transcript, language)
	}

	key := cacheTranslationKey(language, transcript)
	if cached, ok := s.cachedListing(ctx, key); ok {
		return cached
	}

	translated, err := s.translator.Translate(ctx, ports.TranslationRequest{
		Transcript: transcript,
		Language:   language,
	})
	if err != nil {
		return commerce.ParseTranscript(transcript, language)
	}

	if encoded, err := json.Marshal(translated); err == nil {
		s.setCacheBestEffort(ctx, key, string(encoded))
	}
	return translated
}

func (s *Service) cachedListing(ctx context.Context, key string) (commerce.Listing, bool) {
	if s.cache == nil {
		return commerce.Listing{}, false
	}

	value, found, err := s.cache.Get(ctx, key)
	if err != nil || !found {
		return commerce.Listing{}, false
	}

	var listing commerce.Listing
	if err := json.Unmarshal([]byte(value), &listing); err != nil {
		return commerce.Listing{}, false
	}
	if listing.Validate() != nil {
		return commerce.Listing{}, false
	}
	return listing, true
}

func mapCatalogItem(catalog ports.Catalog) CatalogItem {
	return CatalogItem{
		CatalogID: catalog.CatalogID,
		FarmerID:  catalog.FarmerID,
		Listing:   catalog.Listing,
		Status:    string(catalog.Status),
		CreatedAt: catalog.CreatedAt,
		UpdatedAt: catalog.UpdatedAt,
	}
}
