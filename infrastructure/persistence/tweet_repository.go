package persistence

import (
	"context"
	"time"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const tweetNotFound = "Tweet not found"

type TweetRepository struct {
	coll *mongo.Collection
}

func NewTweetRepository(db *MongoDb) repository.ITweet {
	return &TweetRepository{coll: db.Collection(aggregation.CollTweets)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	now := time.Now().UTC()
	if tweet.ID.IsZero() {
		tweet.ID = bson.NewObjectID()
	}
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, tweet)
	return mapError(err, "insert tweet", tweetNotFound)
}

func (r *TweetRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tweet); err != nil {
		return nil, mapError(err, "find tweet", tweetNotFound)
	}
	return &tweet, nil
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tweet model.Tweet
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&tweet); err != nil {
		return nil, mapError(err, "update tweet", tweetNotFound)
	}
	return &tweet, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return mapError(err, "delete tweet", tweetNotFound)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound(tweetNotFound)
	}
	return nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, owner bson.ObjectID, q dto.ListQuery) ([]model.TweetView, int64, error) {
	sort := aggregation.ResolveSort(q.SortBy, q.SortType, aggregation.TweetSortFields...)
	tweets := []model.TweetView{}
	if err := aggregateAll(ctx, r.coll, aggregation.TweetsByOwner(owner, sort, q.Page, q.Limit), &tweets); err != nil {
		return nil, 0, mapError(err, "list tweets", tweetNotFound)
	}
	total, err := r.coll.CountDocuments(ctx, bson.D{{Key: "owner", Value: owner}})
	if err != nil {
		return nil, 0, mapError(err, "count tweets", tweetNotFound)
	}
	return tweets, total, nil
}
