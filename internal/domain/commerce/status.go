package commerce

import "fmt"

// CatalogStatus is the lifecycle state of a listing.
// A catalog only ever moves forward: DRAFT -> BROADCASTED -> SOLD.
type CatalogStatus string

const (
	StatusDraft       CatalogStatus = "DRAFT"
	StatusBroadcasted CatalogStatus = "BROADCASTED"
	StatusSold        CatalogStatus = "SOLD"
)

var allowedTransitions = map[CatalogStatus]CatalogStatus{
	StatusDraft:       StatusBroadcasted,
	StatusBroadcasted: StatusSold,
}

func ParseCatalogStatus(raw string) (CatalogStatus, error) {
	switch CatalogStatus(raw) {
	case StatusDraft, StatusBroadcasted, StatusSold:
		return CatalogStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

func (s CatalogStatus) CanTransitionTo(next CatalogStatus) bool {
	return allowedTransitions[s] == next
}

// CheckTransition returns ErrInvalidTransition when the move is not allowed.
func CheckTransition(from, to CatalogStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// NetworkEventType classifies a network log row.
type NetworkEventType string

const (
	EventOutgoingCatalog NetworkEventType = "OUTGOING_CATALOG"
	EventIncomingBid     NetworkEventType = "INCOMING_BID"
)

func ParseNetworkEventType(raw string) (NetworkEventType, error) {
	switch NetworkEventType(raw) {
	case EventOutgoingCatalog, EventIncomingBid:
		return NetworkEventType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, raw)
}
