package service

import (
	"context"

	"github.com/Eursukkul/nexo-service/pkg/logger"
)

// EventPublisher emits domain events. Services accept a nil publisher and
// then skip publishing.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// publish is fire-and-forget: the write it reports on has already committed.
func publish(ctx context.Context, p EventPublisher, log *logger.Logger, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("failed to publish event", "routing_key", routingKey, "error", err)
	}
}
