// Package events publishes completed-transaction notifications over NATS.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mvallejo/bancore/pkg/dto"
	"github.com/nats-io/nats.go"
)

// Publisher emits a message per committed ledger record. Publishing is
// best effort: a failed publish is logged, never surfaced to the caller,
// since the money movement has already committed.
type Publisher struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url, subject string, logger *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("bancore"))
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc, subject: subject, logger: logger}, nil
}

// TransactionCompleted publishes the recorded transaction as JSON.
func (p *Publisher) TransactionCompleted(_ context.Context, tx *dto.TransactionRead) {
	payload, err := json.Marshal(tx)
	if err != nil {
		p.logger.Error("encode transaction event", "err", err, "transaction_id", tx.ID)
		return
	}
	if err := p.nc.Publish(p.subject, payload); err != nil {
		p.logger.Error("publish transaction event", "err", err, "transaction_id", tx.ID)
	}
}

// Close drains the connection, waiting for buffered messages to flush.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("drain nats connection", "err", err)
	}
}
