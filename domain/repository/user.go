package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidtube/domain/model"
)

// IUser is the store of user accounts. Lookups that match nothing return an
// apperror of kind NotFound; unique index violations return kind Conflict.
type IUser interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	// FindByUsernameOrEmail matches either field; empty arguments are ignored.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.User, error)
	// SetRefreshToken stores token, or unsets the field when token is empty.
	SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error
	PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID) error

	ChannelProfile(ctx context.Context, username string, viewer *bson.ObjectID) (*model.ChannelProfile, error)
	WatchHistory(ctx context.Context, id bson.ObjectID) ([]model.VideoView, error)
}
