package persistence

import (
	"context"

	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type DashboardRepository struct {
	videos *mongo.Collection
	tweets *mongo.Collection
}

func NewDashboardRepository(db *MongoDb) repository.IDashboard {
	return &DashboardRepository{
		videos: db.Collection(aggregation.CollVideos),
		tweets: db.Collection(aggregation.CollTweets),
	}
}

// VideoStats returns zeroes when the $group stage emits nothing.
func (r *DashboardRepository) VideoStats(ctx context.Context, owner bson.ObjectID) (*model.VideoStats, error) {
	stats := &model.VideoStats{}
	if _, err := aggregateOne(ctx, r.videos, aggregation.VideoStats(owner), stats); err != nil {
		return nil, mapError(err, "aggregate video stats", "Channel not found")
	}
	return stats, nil
}

func (r *DashboardRepository) TweetStats(ctx context.Context, owner bson.ObjectID) (*model.TweetStats, error) {
	stats := &model.TweetStats{}
	if _, err := aggregateOne(ctx, r.tweets, aggregation.TweetStats(owner), stats); err != nil {
		return nil, mapError(err, "aggregate tweet stats", "Channel not found")
	}
	return stats, nil
}
