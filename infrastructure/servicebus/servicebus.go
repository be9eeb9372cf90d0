package servicebus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"

	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
)

// NewServiceBus connects with a connection string when one is given, and
// otherwise with the default Azure credential chain against namespace.
func NewServiceBus(namespace, connectionString string) (*azservicebus.Client, error) {
	if connectionString != "" {
		return azservicebus.NewClientFromConnectionString(connectionString, nil)
	}
	if namespace == "" {
		return nil, fmt.Errorf("servicebus: namespace or connection string is required")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("servicebus credential: %w", err)
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

// EventPublisher sends domain events to a queue or topic.
type EventPublisher struct {
	client *azservicebus.Client
	sender *azservicebus.Sender
}

func NewEventPublisher(client *azservicebus.Client, queueOrTopic string) (*EventPublisher, error) {
	sender, err := client.NewSender(queueOrTopic, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return nil, err
	}
	return &EventPublisher{client: client, sender: sender}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.Event) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}
	if err := p.sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return fmt.Errorf("send %s: %w", event.Type, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	ctx := context.Background()
	if err := p.sender.Close(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while closing sender.")
	}
	return p.client.Close(ctx)
}

func toMessage(event model.Event) (*azservicebus.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	subject := event.Type
	contentType := "application/json"
	return &azservicebus.Message{
		Body:        body,
		Subject:     &subject,
		ContentType: &contentType,
		ApplicationProperties: map[string]interface{}{
			"type": event.Type,
		},
	}, nil
}
