package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidtube/domain/dto"
	"vidtube/domain/model"
)

// VideoFilter is the match predicate of a video listing.
type VideoFilter struct {
	Owner         *bson.ObjectID
	PublishedOnly bool
	Search        string
}

type IVideo interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error)
	Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.Video, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	IncrementViews(ctx context.Context, id bson.ObjectID) error

	// Detail returns the video with its owner summary and like count.
	Detail(ctx context.Context, id bson.ObjectID) (*model.VideoView, error)
	// List returns one page of matches and the total match count.
	List(ctx context.Context, filter VideoFilter, q dto.ListQuery) ([]model.VideoView, int64, error)
}
