package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"vidtube/domain/model"
	"vidtube/infrastructure/logger"
)

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("pubsub: project id is required")
	}
	return pubsub.NewClient(ctx, projectID)
}

// EventPublisher publishes domain events to a single topic.
type EventPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewEventPublisher binds to topicName, creating the topic if it doesn't
// exist.
func NewEventPublisher(ctx context.Context, client *pubsub.Client, topicName string) (*EventPublisher, error) {
	topic := client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", topicName, err)
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicName).Info("Topic doesn't exist - creating it")
		if topic, err = client.CreateTopic(ctx, topicName); err != nil {
			return nil, fmt.Errorf("create topic %s: %w", topicName, err)
		}
	}
	return &EventPublisher{client: client, topic: topic}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.Event) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	serverID, err := p.topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"serverId": serverID,
		"type":     event.Type,
	}).Debug("Event published")
	return nil
}

func (p *EventPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

func encodeEvent(event model.Event) (*pubsub.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	return &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"type": event.Type},
	}, nil
}
