package persistence

import (
	"context"
	"errors"
	"fmt"

	"vidtube/domain/apperror"
	"vidtube/infrastructure/aggregation"
	"vidtube/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// mapError converts driver errors into domain errors. A missing document
// becomes NotFound with notFound as its message, a unique index violation
// becomes Conflict, anything else is wrapped with op.
func mapError(err error, op, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperror.Wrap(apperror.NotFound, notFound, err)
	case mongo.IsDuplicateKeyError(err):
		return apperror.Wrap(apperror.Conflict, "resource already exists", err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// aggregateAll runs pipeline and decodes every result into out.
func aggregateAll(ctx context.Context, coll *mongo.Collection, b *aggregation.Builder, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, b.Pipeline())
	if err != nil {
		return err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)
	return cursor.All(ctx, out)
}

// aggregateOne decodes the first result into out and reports whether there
// was one.
func aggregateOne(ctx context.Context, coll *mongo.Collection, b *aggregation.Builder, out interface{}) (bool, error) {
	cursor, err := coll.Aggregate(ctx, b.Pipeline())
	if err != nil {
		return false, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)
	if !cursor.Next(ctx) {
		return false, cursor.Err()
	}
	return true, cursor.Decode(out)
}

// aggregateCount runs a pipeline ending in a $count stage. No output document
// means zero matches.
func aggregateCount(ctx context.Context, coll *mongo.Collection, b *aggregation.Builder) (int64, error) {
	var res struct {
		Total int64 `bson:"total"`
	}
	if _, err := aggregateOne(ctx, coll, b, &res); err != nil {
		return 0, err
	}
	return res.Total, nil
}
