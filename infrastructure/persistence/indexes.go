package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/domain/model"
	"vidtube/infrastructure/aggregation"
	"vidtube/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

// indexSpecs declares every index the application relies on. The like and
// subscription unique indexes are what make toggles race-free.
func indexSpecs() []indexSpec {
	specs := []indexSpec{
		{aggregation.CollUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		}},
		{aggregation.CollUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		}},
		{aggregation.CollVideos, mongo.IndexModel{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("owner_createdAt"),
		}},
		{aggregation.CollVideos, mongo.IndexModel{
			Keys:    bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("isPublished_createdAt"),
		}},
		{aggregation.CollComments, mongo.IndexModel{
			Keys:    bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("video_createdAt"),
		}},
		{aggregation.CollTweets, mongo.IndexModel{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("owner_createdAt"),
		}},
		{aggregation.CollSubscriptions, mongo.IndexModel{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetName("subscriber_channel_unique").SetUnique(true),
		}},
		{aggregation.CollSubscriptions, mongo.IndexModel{
			Keys:    bson.D{{Key: "channel", Value: 1}},
			Options: options.Index().SetName("channel_single"),
		}},
	}
	for _, target := range model.LikeTargets {
		field := string(target)
		exists := bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}}
		specs = append(specs,
			indexSpec{aggregation.CollLikes, mongo.IndexModel{
				Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: field, Value: 1}},
				Options: options.Index().
					SetName("likedBy_" + field + "_unique").
					SetUnique(true).
					SetPartialFilterExpression(exists),
			}},
			indexSpec{aggregation.CollLikes, mongo.IndexModel{
				Keys: bson.D{{Key: field, Value: 1}},
				Options: options.Index().
					SetName(field + "_single").
					SetPartialFilterExpression(exists),
			}},
		)
	}
	return specs
}

// EnsureIndexes creates missing indexes. Re-creating an identical index is a
// no-op on the server; a conflicting definition is logged and left in place.
func EnsureIndexes(ctx context.Context, db *MongoDb) error {
	for _, spec := range indexSpecs() {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			if isIndexConflict(err) {
				logger.GetLogger().WithFields(map[string]interface{}{
					"collection": spec.collection,
					"error":      err,
				}).Warn("Index exists with different options, keeping existing")
				continue
			}
			return fmt.Errorf("failed to create index on %s: %w", spec.collection, err)
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"collection": spec.collection,
			"index":      name,
		}).Debug("Index ensured")
	}
	return nil
}

func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// IndexOptionsConflict, IndexKeySpecsConflict
		if cmdErr.Code == 85 || cmdErr.Code == 86 {
			return true
		}
	}
	return strings.Contains(err.Error(), "already exists")
}
