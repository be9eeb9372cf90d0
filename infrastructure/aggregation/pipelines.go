package aggregation

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ownerSummary is the projection applied to every joined user.
var ownerSummary = bson.D{
	{Key: "_id", Value: 1},
	{Key: "username", Value: 1},
	{Key: "fullname", Value: 1},
	{Key: "avatar", Value: 1},
}

var videoFields = bson.D{
	{Key: "_id", Value: 1},
	{Key: "owner", Value: 1},
	{Key: "ownerDetails", Value: 1},
	{Key: "videoFile", Value: 1},
	{Key: "thumbnail", Value: 1},
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "duration", Value: 1},
	{Key: "views", Value: 1},
	{Key: "isPublished", Value: 1},
	{Key: "likesCount", Value: 1},
	{Key: "createdAt", Value: 1},
	{Key: "updatedAt", Value: 1},
}

// VideoFilter builds the listing predicate. Publication is enforced unless
// the listing is scoped to the owner's own channel.
func VideoFilter(owner *bson.ObjectID, publishedOnly bool, search string) bson.D {
	f := NewFilter()
	if publishedOnly {
		f.Eq("isPublished", true)
	}
	return f.Owner("owner", owner).Search(search, "title", "description").D()
}

// VideoList matches, orders and pages videos before attaching owner
// summaries, so joins only run for the returned window.
func VideoList(filter bson.D, sort SortSpec, page, limit int64) *Builder {
	return New().
		Match(filter).
		Sort(sort).
		Paginate(page, limit).
		JoinOne(CollUsers, "owner", "_id", "ownerDetails", ownerSummary).
		CountJoined(CollLikes, "_id", "video", "likesCount").
		Project(videoFields)
}

func VideoDetail(id bson.ObjectID) *Builder {
	return New().
		Match(bson.D{{Key: "_id", Value: id}}).
		JoinOne(CollUsers, "owner", "_id", "ownerDetails", ownerSummary).
		CountJoined(CollLikes, "_id", "video", "likesCount").
		Project(videoFields)
}

func CommentsByVideo(videoID bson.ObjectID, page, limit int64) *Builder {
	return New().
		Match(bson.D{{Key: "video", Value: videoID}}).
		Sort(DefaultSort).
		Paginate(page, limit).
		JoinOne(CollUsers, "owner", "_id", "owner", ownerSummary).
		CountJoined(CollLikes, "_id", "comment", "likesCount").
		Project(bson.D{
			{Key: "_id", Value: 1},
			{Key: "video", Value: 1},
			{Key: "content", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "likesCount", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
		})
}

func TweetsByOwner(owner bson.ObjectID, sort SortSpec, page, limit int64) *Builder {
	return New().
		Match(bson.D{{Key: "owner", Value: owner}}).
		Sort(sort).
		Paginate(page, limit).
		JoinOne(CollUsers, "owner", "_id", "owner", ownerSummary).
		CountJoined(CollLikes, "_id", "tweet", "likesCount").
		Project(bson.D{
			{Key: "_id", Value: 1},
			{Key: "content", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "likesCount", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "updatedAt", Value: 1},
		})
}

// likedVideosBase keeps only likes whose video still exists, so the page and
// its count agree when liked videos have been deleted.
func likedVideosBase(likedBy bson.ObjectID) *Builder {
	return New().
		Match(bson.D{
			{Key: "likedBy", Value: likedBy},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}}},
		}).
		Lookup(CollVideos, "video", "_id", "video").
		Unwind("video", false)
}

func LikedVideos(likedBy bson.ObjectID, page, limit int64) *Builder {
	return likedVideosBase(likedBy).
		Sort(DefaultSort).
		Paginate(page, limit).
		JoinOne(CollUsers, "video.owner", "_id", "video.ownerDetails", ownerSummary).
		Project(bson.D{
			{Key: "_id", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "video", Value: 1},
		})
}

func LikedVideosCount(likedBy bson.ObjectID) *Builder {
	return likedVideosBase(likedBy).Count()
}

// subscriptionSide lists subscriptions matched on one side and joins the user
// on the other side under "user".
func subscriptionSide(matchField string, id bson.ObjectID, joinField string, page, limit int64) *Builder {
	return New().
		Match(bson.D{{Key: matchField, Value: id}}).
		Sort(DefaultSort).
		Paginate(page, limit).
		JoinOne(CollUsers, joinField, "_id", "user", ownerSummary).
		Project(bson.D{
			{Key: "_id", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "user", Value: 1},
		})
}

func ChannelSubscribers(channel bson.ObjectID, page, limit int64) *Builder {
	return subscriptionSide("channel", channel, "subscriber", page, limit)
}

func SubscribedChannels(subscriber bson.ObjectID, page, limit int64) *Builder {
	return subscriptionSide("subscriber", subscriber, "channel", page, limit)
}

// ChannelProfile resolves a username to its public profile. isSubscribed is
// true only when viewer is among the channel's subscribers.
func ChannelProfile(username string, viewer *bson.ObjectID) *Builder {
	var isSubscribed interface{} = false
	if viewer != nil && !viewer.IsZero() {
		isSubscribed = bson.D{{Key: "$in", Value: bson.A{*viewer, "$subscribers.subscriber"}}}
	}
	return New().
		Match(bson.D{{Key: "username", Value: username}}).
		Lookup(CollSubscriptions, "_id", "channel", "subscribers").
		Lookup(CollSubscriptions, "_id", "subscriber", "subscribedTo").
		AddFields(bson.D{
			{Key: "subscribersCount", Value: bson.D{{Key: "$size", Value: "$subscribers"}}},
			{Key: "channelsSubscribedToCount", Value: bson.D{{Key: "$size", Value: "$subscribedTo"}}},
			{Key: "isSubscribed", Value: isSubscribed},
		}).
		Project(bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "fullname", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
		})
}

// WatchHistory expands a user's history into videos, most recent first.
// Entries pointing at deleted videos are skipped.
func WatchHistory(userID bson.ObjectID) *Builder {
	return New().
		Match(bson.D{{Key: "_id", Value: userID}}).
		Project(bson.D{{Key: "watchHistory", Value: 1}}).
		Add(Unwind{Path: "watchHistory", IndexField: "position"}).
		Lookup(CollVideos, "watchHistory", "_id", "video").
		Unwind("video", false).
		JoinOne(CollUsers, "video.owner", "_id", "video.ownerDetails", ownerSummary).
		Sort(SortSpec{Field: "position", Direction: Ascending}).
		ReplaceRoot("video").
		Project(videoFields)
}

// VideoStats folds an owner's videos into a single rollup document. No
// document is produced when the owner has no videos.
func VideoStats(owner bson.ObjectID) *Builder {
	return New().
		Match(bson.D{{Key: "owner", Value: owner}}).
		CountJoined(CollLikes, "_id", "video", "likesCount").
		CountJoined(CollComments, "_id", "video", "commentsCount").
		Group(nil, bson.D{
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalVideoViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "totalVideoLikes", Value: bson.D{{Key: "$sum", Value: "$likesCount"}}},
			{Key: "totalVideoComments", Value: bson.D{{Key: "$sum", Value: "$commentsCount"}}},
		})
}

func TweetStats(owner bson.ObjectID) *Builder {
	return New().
		Match(bson.D{{Key: "owner", Value: owner}}).
		CountJoined(CollLikes, "_id", "tweet", "likesCount").
		Group(nil, bson.D{
			{Key: "totalTweets", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalTweetLikes", Value: bson.D{{Key: "$sum", Value: "$likesCount"}}},
		})
}
