package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidtube/domain/dto"
	"vidtube/domain/model"
)

type IComment interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ListByVideo(ctx context.Context, videoID bson.ObjectID, q dto.ListQuery) ([]model.CommentView, int64, error)
}

type ITweet interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error)
	UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ListByOwner(ctx context.Context, owner bson.ObjectID, q dto.ListQuery) ([]model.TweetView, int64, error)
}
