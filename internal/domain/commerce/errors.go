package commerce

import "errors"

var (
	ErrUnknownStatus     = errors.New("unknown catalog status")
	ErrUnknownEventType  = errors.New("unknown network event type")
	ErrInvalidTransition = errors.New("catalog status transition not allowed")

	ErrDescriptorRequired = errors.New("listing descriptor is required")
	ErrPriceNotPositive   = errors.New("listing price must be positive")
	ErrQuantityNotPositive = errors.New("listing quantity must be positive")

	ErrNoBuyers = errors.New("buyer network is empty")
)
