package aggregation

const (
	CollUsers         = "users"
	CollVideos        = "videos"
	CollComments      = "comments"
	CollTweets        = "tweets"
	CollLikes         = "likes"
	CollSubscriptions = "subscriptions"
)

// Sortable fields per collection. Anything else falls back to DefaultSort.
var (
	VideoSortFields = []string{"createdAt", "updatedAt", "views", "duration", "title"}
	TweetSortFields = []string{"createdAt", "updatedAt"}
)
