package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/model"
)

func TestAuthorize(t *testing.T) {
	owner := bson.NewObjectID()
	other := bson.NewObjectID()

	assert.True(t, Authorize(owner, &model.Video{Owner: owner}))
	assert.True(t, Authorize(owner, &model.Comment{Owner: owner}))
	assert.False(t, Authorize(other, &model.Tweet{Owner: owner}))
	assert.False(t, Authorize(bson.ObjectID{}, &model.Tweet{}))
}

func TestLoadOwned_Sequencing(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	tweetID := bson.NewObjectID()

	t.Run("malformed id never reaches the store", func(t *testing.T) {
		calls := 0
		find := func(context.Context, bson.ObjectID) (*model.Tweet, error) {
			calls++
			return nil, nil
		}
		_, err := loadOwned(ctx, owner, "not-an-id", "tweet", find, "nope")
		assert.True(t, apperror.Is(err, apperror.InvalidInput))
		assert.Zero(t, calls)
	})

	t.Run("missing resource is not found, not forbidden", func(t *testing.T) {
		find := func(context.Context, bson.ObjectID) (*model.Tweet, error) {
			return nil, apperror.NewNotFound("Tweet not found")
		}
		_, err := loadOwned(ctx, bson.NewObjectID(), tweetID.Hex(), "tweet", find, "nope")
		assert.True(t, apperror.Is(err, apperror.NotFound))
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		find := func(context.Context, bson.ObjectID) (*model.Tweet, error) {
			return &model.Tweet{ID: tweetID, Owner: owner}, nil
		}
		_, err := loadOwned(ctx, bson.NewObjectID(), tweetID.Hex(), "tweet", find, "You are not allowed")
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.Forbidden))
		assert.Equal(t, "You are not allowed", apperror.PublicMessage(err))
	})

	t.Run("owner gets the resource", func(t *testing.T) {
		find := func(_ context.Context, id bson.ObjectID) (*model.Tweet, error) {
			return &model.Tweet{ID: id, Owner: owner}, nil
		}
		tweet, err := loadOwned(ctx, owner, tweetID.Hex(), "tweet", find, "nope")
		require.NoError(t, err)
		assert.Equal(t, tweetID, tweet.ID)
	})
}
