package network

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"

	"setu/internal/bootstrap/logging"
	"setu/internal/errs"
	"setu/internal/ports"
)

// NATSPublisher mirrors network-log events onto NATS subjects so external
// demo consumers can watch the simulated open network.
type NATSPublisher struct {
	conn *nats.Conn
}

var _ ports.NetworkPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(ctx context.Context, url string) (*NATSPublisher, error) {
	if url == "" {
		return nil, errors.New("nats url is required")
	}

	conn, err := nats.Connect(url, nats.Name("setu"))
	if err != nil {
		return nil, errs.Wrap(err, "connect nats")
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "network.nats")),
		"nats publisher connected",
		slog.String("url", url),
	)
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		return errs.Wrapf(err, "publish %s", subject)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}
