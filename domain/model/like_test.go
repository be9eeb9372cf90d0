package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNewLike_SetsExactlyOneTarget(t *testing.T) {
	user := bson.NewObjectID()
	target := bson.NewObjectID()

	for _, kind := range LikeTargets {
		t.Run(string(kind), func(t *testing.T) {
			like, err := NewLike(user, kind, target, time.Now())
			require.NoError(t, err)

			gotKind, gotID, ok := like.Target()
			require.True(t, ok)
			assert.Equal(t, kind, gotKind)
			assert.Equal(t, target, gotID)

			raw, err := bson.Marshal(like)
			require.NoError(t, err)
			var doc bson.M
			require.NoError(t, bson.Unmarshal(raw, &doc))
			for _, other := range LikeTargets {
				_, present := doc[string(other)]
				assert.Equal(t, other == kind, present, "field %s", other)
			}
		})
	}
}

func TestNewLike_UnknownTarget(t *testing.T) {
	_, err := NewLike(bson.NewObjectID(), LikeTarget("playlist"), bson.NewObjectID(), time.Now())
	assert.Error(t, err)
	assert.False(t, LikeTarget("playlist").Valid())
}

func TestLikeTarget_RejectsAmbiguous(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	_, _, ok := (&Like{Video: &a, Tweet: &b}).Target()
	assert.False(t, ok)

	_, _, ok = (&Like{}).Target()
	assert.False(t, ok)
}
