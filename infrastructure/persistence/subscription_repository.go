package persistence

import (
	"context"
	"time"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const subscriptionNotFound = "Subscription not found"

type SubscriptionRepository struct {
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *MongoDb) repository.ISubscription {
	return &SubscriptionRepository{coll: db.Collection(aggregation.CollSubscriptions)}
}

func (r *SubscriptionRepository) Insert(ctx context.Context, sub *model.Subscription) error {
	if sub.ID.IsZero() {
		sub.ID = bson.NewObjectID()
	}
	now := time.Now().UTC()
	sub.CreatedAt, sub.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, sub)
	return mapError(err, "insert subscription", subscriptionNotFound)
}

func (r *SubscriptionRepository) Remove(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{
		{Key: "subscriber", Value: subscriber},
		{Key: "channel", Value: channel},
	})
	if err != nil {
		return false, mapError(err, "delete subscription", subscriptionNotFound)
	}
	return res.DeletedCount > 0, nil
}

func (r *SubscriptionRepository) Subscribers(ctx context.Context, channel bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error) {
	return r.list(ctx, aggregation.ChannelSubscribers(channel, q.Page, q.Limit), bson.D{{Key: "channel", Value: channel}})
}

func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error) {
	return r.list(ctx, aggregation.SubscribedChannels(subscriber, q.Page, q.Limit), bson.D{{Key: "subscriber", Value: subscriber}})
}

func (r *SubscriptionRepository) list(ctx context.Context, b *aggregation.Builder, match bson.D) ([]model.SubscriptionView, int64, error) {
	subs := []model.SubscriptionView{}
	if err := aggregateAll(ctx, r.coll, b, &subs); err != nil {
		return nil, 0, mapError(err, "list subscriptions", subscriptionNotFound)
	}
	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, mapError(err, "count subscriptions", subscriptionNotFound)
	}
	return subs, total, nil
}
