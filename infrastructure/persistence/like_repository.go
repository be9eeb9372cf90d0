package persistence

import (
	"context"
	"fmt"
	"time"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *MongoDb) repository.ILike {
	return &LikeRepository{coll: db.Collection(aggregation.CollLikes)}
}

// Insert relies on the partial unique index per target kind; a concurrent
// duplicate surfaces as Conflict.
func (r *LikeRepository) Insert(ctx context.Context, like *model.Like) error {
	if _, _, ok := like.Target(); !ok {
		return apperror.NewInvalidInput("A like must reference exactly one target")
	}
	if like.ID.IsZero() {
		like.ID = bson.NewObjectID()
	}
	if like.CreatedAt.IsZero() {
		now := time.Now().UTC()
		like.CreatedAt, like.UpdatedAt = now, now
	}
	_, err := r.coll.InsertOne(ctx, like)
	return mapError(err, "insert like", "Like not found")
}

func (r *LikeRepository) Remove(ctx context.Context, likedBy bson.ObjectID, target model.LikeTarget, targetID bson.ObjectID) (bool, error) {
	if !target.Valid() {
		return false, fmt.Errorf("unknown like target %q", target)
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{
		{Key: "likedBy", Value: likedBy},
		{Key: string(target), Value: targetID},
	})
	if err != nil {
		return false, mapError(err, "delete like", "Like not found")
	}
	return res.DeletedCount > 0, nil
}

func (r *LikeRepository) CountByTarget(ctx context.Context, target model.LikeTarget, targetID bson.ObjectID) (int64, error) {
	if !target.Valid() {
		return 0, fmt.Errorf("unknown like target %q", target)
	}
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: string(target), Value: targetID}})
	if err != nil {
		return 0, mapError(err, "count likes", "Like not found")
	}
	return n, nil
}

func (r *LikeRepository) LikedVideos(ctx context.Context, likedBy bson.ObjectID, q dto.ListQuery) ([]model.LikedVideo, int64, error) {
	videos := []model.LikedVideo{}
	if err := aggregateAll(ctx, r.coll, aggregation.LikedVideos(likedBy, q.Page, q.Limit), &videos); err != nil {
		return nil, 0, mapError(err, "list liked videos", "Like not found")
	}
	total, err := aggregateCount(ctx, r.coll, aggregation.LikedVideosCount(likedBy))
	if err != nil {
		return nil, 0, mapError(err, "count liked videos", "Like not found")
	}
	return videos, total, nil
}
