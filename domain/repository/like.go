package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidtube/domain/dto"
	"vidtube/domain/model"
)

// ILike stores likes under a unique (likedBy, target) constraint per target
// kind. Insert returns an apperror of kind Conflict when the pair exists.
type ILike interface {
	Insert(ctx context.Context, like *model.Like) error
	// Remove deletes the like for the pair and reports whether one existed.
	Remove(ctx context.Context, likedBy bson.ObjectID, target model.LikeTarget, targetID bson.ObjectID) (bool, error)
	CountByTarget(ctx context.Context, target model.LikeTarget, targetID bson.ObjectID) (int64, error)
	LikedVideos(ctx context.Context, likedBy bson.ObjectID, q dto.ListQuery) ([]model.LikedVideo, int64, error)
}

type ISubscription interface {
	Insert(ctx context.Context, sub *model.Subscription) error
	Remove(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error)
	Subscribers(ctx context.Context, channel bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error)
	SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error)
}

// IDashboard computes channel rollups. A channel without videos or tweets
// yields zero-valued stats, never nil.
type IDashboard interface {
	VideoStats(ctx context.Context, owner bson.ObjectID) (*model.VideoStats, error)
	TweetStats(ctx context.Context, owner bson.ObjectID) (*model.TweetStats, error)
}
