package ports

import "context"

// Network subjects mirrored from the network log.
const (
	SubjectCatalogBroadcast = "setu.catalog.broadcast"
	SubjectCatalogBid       = "setu.catalog.bid"
)

// NetworkPublisher fans a network event out to an external channel
// (NATS subject, websocket subscribers). Publishing is best effort;
// the network log row is the source of truth.
type NetworkPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}
