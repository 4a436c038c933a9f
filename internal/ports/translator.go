package ports

import (
	"context"
	"errors"

	"setu/internal/domain/commerce"
)

// ErrTranslatorUnavailable signals that the hosted translator cannot be
// used (missing API key, network failure, malformed response). Callers
// fall back to the deterministic parser.
var ErrTranslatorUnavailable = errors.New("translator unavailable")

type TranslationRequest struct {
	Transcript string
	Language   string
}

// Translator turns a voice transcript into a structured listing.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (commerce.Listing, error)
}
