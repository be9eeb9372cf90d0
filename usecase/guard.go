package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/model"
)

// Authorize reports whether actor owns resource.
func Authorize(actor bson.ObjectID, resource model.Ownable) bool {
	return !actor.IsZero() && resource.OwnerID() == actor
}

// loadOwned runs the mutation preamble in its fixed order: validate the ID,
// fetch the resource (NotFound), then check ownership (Forbidden). Callers
// mutate only after it returns without error.
func loadOwned[T model.Ownable](
	ctx context.Context,
	actor bson.ObjectID,
	rawID, label string,
	find func(context.Context, bson.ObjectID) (T, error),
	forbidden string,
) (T, error) {
	var zero T
	id, err := parseID(rawID, label)
	if err != nil {
		return zero, err
	}
	resource, err := find(ctx, id)
	if err != nil {
		return zero, err
	}
	if !Authorize(actor, resource) {
		return zero, apperror.NewForbidden(forbidden)
	}
	return resource, nil
}
