package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "vidtube/interfaces/http"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	User         httpHandler.IUserHandler
	Video        httpHandler.IVideoHandler
	Comment      httpHandler.ICommentHandler
	Tweet        httpHandler.ITweetHandler
	Like         httpHandler.ILikeHandler
	Subscription httpHandler.ISubscriptionHandler
	Dashboard    httpHandler.IDashboardHandler
	Health       httpHandler.IHealthHandler
}

// Middleware carries the request guards. RateLimit may be nil.
type Middleware struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	RateLimit    gin.HandlerFunc
}

func InitiateRouter(h Handlers, m Middleware, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limit := m.RateLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	router.GET("/healthz", h.Health.Healthz)

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/register", limit, h.User.Register)
		users.POST("/login", limit, h.User.Login)
		users.POST("/refresh-token", limit, h.User.RefreshAccessToken)
		users.GET("/c/:username", m.OptionalAuth, h.User.GetUserChannelProfile)

		secured := users.Group("", m.Auth)
		secured.POST("/logout", h.User.Logout)
		secured.GET("/current-user", h.User.GetCurrentUser)
		secured.POST("/change-password", limit, h.User.ChangePassword)
		secured.PATCH("/update-account", limit, h.User.UpdateAccountDetails)
		secured.PATCH("/avatar", limit, h.User.UpdateAvatar)
		secured.PATCH("/cover-image", limit, h.User.UpdateCoverImage)
		secured.GET("/history", h.User.GetWatchHistory)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", h.Video.GetAllVideos)
		videos.GET("/:videoId", m.OptionalAuth, h.Video.GetVideoByID)

		secured := videos.Group("", m.Auth, limit)
		secured.POST("", h.Video.PublishVideo)
		secured.PATCH("/:videoId", h.Video.UpdateVideo)
		secured.DELETE("/:videoId", h.Video.DeleteVideo)
		secured.PATCH("/toggle/publish/:videoId", h.Video.TogglePublishStatus)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/:videoId", m.OptionalAuth, h.Comment.GetVideoComments)

		secured := comments.Group("", m.Auth, limit)
		secured.POST("/:videoId", h.Comment.AddComment)
		secured.PATCH("/c/:commentId", h.Comment.UpdateComment)
		secured.DELETE("/c/:commentId", h.Comment.DeleteComment)
	}

	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:userId", h.Tweet.GetUserTweets)

		secured := tweets.Group("", m.Auth, limit)
		secured.POST("", h.Tweet.CreateTweet)
		secured.PATCH("/:tweetId", h.Tweet.UpdateTweet)
		secured.DELETE("/:tweetId", h.Tweet.DeleteTweet)
	}

	likes := v1.Group("/likes", m.Auth)
	{
		likes.POST("/toggle/v/:videoId", limit, h.Like.ToggleVideoLike)
		likes.POST("/toggle/c/:commentId", limit, h.Like.ToggleCommentLike)
		likes.POST("/toggle/t/:tweetId", limit, h.Like.ToggleTweetLike)
		likes.GET("/videos", h.Like.GetLikedVideos)
	}

	subscriptions := v1.Group("/subscriptions", m.Auth)
	{
		subscriptions.POST("/c/:channelId", limit, h.Subscription.ToggleSubscription)
		subscriptions.GET("/c/:channelId", h.Subscription.GetChannelSubscribers)
		subscriptions.GET("/u/:subscriberId", h.Subscription.GetSubscribedChannels)
	}

	dashboard := v1.Group("/dashboard", m.Auth)
	{
		dashboard.GET("/stats", h.Dashboard.GetChannelStats)
		dashboard.GET("/videos", h.Dashboard.GetChannelVideos)
	}

	return router
}
