package persistence

import (
	"context"
	"time"

	"vidtube/domain/apperror"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MaxWatchHistory bounds the stored history; older entries fall off the end.
const MaxWatchHistory = 200

const userNotFound = "User not found"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *MongoDb) repository.IUser {
	return &UserRepository{coll: db.Collection(aggregation.CollUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	user.CreatedAt, user.UpdatedAt = now, now
	if user.WatchHistory == nil {
		user.WatchHistory = []bson.ObjectID{}
	}
	_, err := r.coll.InsertOne(ctx, user)
	return mapError(err, "insert user", userNotFound)
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, mapError(err, "find user", userNotFound)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return nil, apperror.NewNotFound(userNotFound)
	}
	var user model.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "$or", Value: or}}).Decode(&user)
	if err != nil {
		return nil, mapError(err, "find user", userNotFound)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		return nil, mapError(err, "update user", userNotFound)
	}
	return &user, nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	update := bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: ""}}}}
	if token != "" {
		update = bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: token}}}}
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return mapError(err, "update refresh token", userNotFound)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound(userNotFound)
	}
	return nil
}

// PushWatchHistory prepends videoID, keeping the newest MaxWatchHistory
// entries.
func (r *UserRepository) PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID) error {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "watchHistory", Value: bson.D{
		{Key: "$each", Value: bson.A{videoID}},
		{Key: "$position", Value: 0},
		{Key: "$slice", Value: MaxWatchHistory},
	}}}}}
	_, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	return mapError(err, "push watch history", userNotFound)
}

func (r *UserRepository) ChannelProfile(ctx context.Context, username string, viewer *bson.ObjectID) (*model.ChannelProfile, error) {
	var profile model.ChannelProfile
	found, err := aggregateOne(ctx, r.coll, aggregation.ChannelProfile(username, viewer), &profile)
	if err != nil {
		return nil, mapError(err, "aggregate channel profile", "Channel does not exist")
	}
	if !found {
		return nil, apperror.NewNotFound("Channel does not exist")
	}
	return &profile, nil
}

func (r *UserRepository) WatchHistory(ctx context.Context, id bson.ObjectID) ([]model.VideoView, error) {
	videos := []model.VideoView{}
	if err := aggregateAll(ctx, r.coll, aggregation.WatchHistory(id), &videos); err != nil {
		return nil, mapError(err, "aggregate watch history", userNotFound)
	}
	return videos, nil
}
