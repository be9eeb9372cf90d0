package model

type VideoStats struct {
	TotalVideos        int64 `bson:"totalVideos" json:"totalVideos"`
	TotalVideoViews    int64 `bson:"totalVideoViews" json:"totalVideoViews"`
	TotalVideoLikes    int64 `bson:"totalVideoLikes" json:"totalVideoLikes"`
	TotalVideoComments int64 `bson:"totalVideoComments" json:"totalVideoComments"`
}

type TweetStats struct {
	TotalTweets     int64 `bson:"totalTweets" json:"totalTweets"`
	TotalTweetLikes int64 `bson:"totalTweetLikes" json:"totalTweetLikes"`
}

// ChannelStats is a point-in-time rollup. Missing groups read as zero.
type ChannelStats struct {
	VideoStats VideoStats `json:"videoStats"`
	TweetStats TweetStats `json:"tweetStats"`
}
