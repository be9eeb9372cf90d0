package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

// parseID validates a client-supplied ID before anything is read or written.
func parseID(raw, label string) (bson.ObjectID, error) {
	id, ok := utils.ParseObjectID(raw)
	if !ok {
		return bson.ObjectID{}, apperror.NewInvalidInput(fmt.Sprintf("Invalid %s ID", label))
	}
	return id, nil
}

// parseActor resolves the authenticated principal. A malformed principal
// means the token was not issued by us.
func parseActor(raw string) (bson.ObjectID, error) {
	id, ok := utils.ParseObjectID(raw)
	if !ok {
		return bson.ObjectID{}, apperror.NewUnauthorized("Unauthorized request")
	}
	return id, nil
}

// parseViewer resolves an optional principal; anything unparseable is treated
// as anonymous.
func parseViewer(raw string) *bson.ObjectID {
	if raw == "" {
		return nil
	}
	id, ok := utils.ParseObjectID(raw)
	if !ok {
		return nil
	}
	return &id
}

// notify publishes event without letting a broker failure affect the caller.
func notify(ctx context.Context, events repository.IEventPublisher, event model.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"type":  event.Type,
		}).Warn("Failed to publish event")
	}
}
