// Package events selects the domain event sink configured for the process.
package events

import (
	"context"
	"fmt"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/pubsub"
	"vidtube/infrastructure/servicebus"
)

const (
	DriverNone       = ""
	DriverPubSub     = "pubsub"
	DriverServiceBus = "servicebus"
)

// Noop drops events after logging them at debug level.
type Noop struct{}

func (Noop) Publish(_ context.Context, event model.Event) error {
	logger.GetLogger().WithField("type", event.Type).Debug("Event dropped, no publisher configured")
	return nil
}

func (Noop) Close() error { return nil }

func NewPublisher(ctx context.Context, cfg configuration.Events) (repository.IEventPublisher, error) {
	switch cfg.Driver {
	case DriverNone, "none":
		return Noop{}, nil
	case DriverPubSub:
		client, err := pubsub.NewPubSub(ctx, cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		pub, err := pubsub.NewEventPublisher(ctx, client, cfg.Topic)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return pub, nil
	case DriverServiceBus:
		client, err := servicebus.NewServiceBus(cfg.Namespace, cfg.ConnectionString)
		if err != nil {
			return nil, err
		}
		pub, err := servicebus.NewEventPublisher(client, cfg.Queue)
		if err != nil {
			_ = client.Close(ctx)
			return nil, err
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
