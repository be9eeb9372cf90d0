package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestVideoFilter(t *testing.T) {
	owner := bson.NewObjectID()

	t.Run("general listing only sees published", func(t *testing.T) {
		f := VideoFilter(nil, true, "")
		assert.Equal(t, bson.D{{Key: "isPublished", Value: true}}, f)
	})

	t.Run("channel view bypasses publication", func(t *testing.T) {
		f := VideoFilter(&owner, false, "")
		assert.Equal(t, bson.D{{Key: "owner", Value: owner}}, f)
	})

	t.Run("search and owner combine", func(t *testing.T) {
		f := VideoFilter(&owner, true, "cats")
		require.Len(t, f, 3)
		assert.Equal(t, "isPublished", f[0].Key)
		assert.Equal(t, "owner", f[1].Key)
		assert.Equal(t, "$or", f[2].Key)
	})
}

func TestVideoList_StageOrder(t *testing.T) {
	b := VideoList(VideoFilter(nil, true, ""), DefaultSort, 2, 5)
	assert.Equal(t, []string{
		"$match", "$sort", "$skip", "$limit",
		"$lookup", "$addFields",
		"$lookup", "$addFields",
		"$project",
	}, stageNames(t, b))

	p := b.Pipeline()
	assert.Equal(t, int64(5), p[2][0].Value)
}

func TestCommentsByVideo_MatchesVideoNewestFirst(t *testing.T) {
	video := bson.NewObjectID()
	p := CommentsByVideo(video, 1, 10).Pipeline()

	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "video", Value: video}}}}, p[0])
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1},
	}}}, p[1])
}

func TestLikedVideos_CountSharesPrefix(t *testing.T) {
	user := bson.NewObjectID()
	page := LikedVideos(user, 1, 10).Pipeline()
	count := LikedVideosCount(user).Pipeline()

	require.Len(t, count, 4)
	assert.Equal(t, page[:3], count[:3])
	assert.Equal(t, bson.D{{Key: "$count", Value: CountField}}, count[3])
	assert.Equal(t, bson.D{{Key: "$unwind", Value: "$video"}}, count[2])
}

func TestChannelProfile_IsSubscribed(t *testing.T) {
	findAddFields := func(p []bson.D) bson.D {
		for _, st := range p {
			if st[0].Key == "$addFields" {
				return st[0].Value.(bson.D)
			}
		}
		t.Fatal("no $addFields stage")
		return nil
	}

	anon := findAddFields(ChannelProfile("alice", nil).Pipeline())
	assert.Equal(t, false, lookupValue(t, anon, "isSubscribed"))

	viewer := bson.NewObjectID()
	viewed := findAddFields(ChannelProfile("alice", &viewer).Pipeline())
	assert.Equal(t,
		bson.D{{Key: "$in", Value: bson.A{viewer, "$subscribers.subscriber"}}},
		lookupValue(t, viewed, "isSubscribed"))
}

func TestWatchHistory_PreservesHistoryOrder(t *testing.T) {
	names := stageNames(t, WatchHistory(bson.NewObjectID()))
	assert.Equal(t, []string{
		"$match", "$project", "$unwind",
		"$lookup", "$unwind",
		"$lookup", "$addFields",
		"$sort", "$replaceRoot", "$project",
	}, names)
}

func TestVideoStats_GroupsEverything(t *testing.T) {
	p := VideoStats(bson.NewObjectID()).Pipeline()
	last := p[len(p)-1]
	require.Equal(t, "$group", last[0].Key)
	group := last[0].Value.(bson.D)
	assert.Nil(t, lookupValue(t, group, "_id"))
	for _, f := range []string{"totalVideos", "totalVideoViews", "totalVideoLikes", "totalVideoComments"} {
		lookupValue(t, group, f)
	}
}

func TestTweetStats_CountsLikesOnTweets(t *testing.T) {
	p := TweetStats(bson.NewObjectID()).Pipeline()
	lookup := p[1][0].Value.(bson.D)
	assert.Equal(t, CollLikes, lookupValue(t, lookup, "from"))
	assert.Equal(t, "tweet", lookupValue(t, lookup, "foreignField"))
}
