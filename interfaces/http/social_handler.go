package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/usecase"
)

type ILikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetLikedVideos(c *gin.Context)
}

type LikeHandler struct {
	likeUsecase usecase.ILikeUsecase
}

func NewLikeHandler(likeUsecase usecase.ILikeUsecase) ILikeHandler {
	return &LikeHandler{likeUsecase: likeUsecase}
}

func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	res, err := h.likeUsecase.ToggleVideoLike(c.Request.Context(), actor(c), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Video like toggled")
}

func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	res, err := h.likeUsecase.ToggleCommentLike(c.Request.Context(), actor(c), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Comment like toggled")
}

func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	res, err := h.likeUsecase.ToggleTweetLike(c.Request.Context(), actor(c), c.Param("tweetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Tweet like toggled")
}

func (h *LikeHandler) GetLikedVideos(c *gin.Context) {
	page, err := h.likeUsecase.GetLikedVideos(c.Request.Context(), actor(c), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Liked videos fetched successfully")
}

type ISubscriptionHandler interface {
	ToggleSubscription(c *gin.Context)
	GetChannelSubscribers(c *gin.Context)
	GetSubscribedChannels(c *gin.Context)
}

type SubscriptionHandler struct {
	subscriptionUsecase usecase.ISubscriptionUsecase
}

func NewSubscriptionHandler(subscriptionUsecase usecase.ISubscriptionUsecase) ISubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	res, err := h.subscriptionUsecase.ToggleSubscription(c.Request.Context(), actor(c), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Subscription toggled")
}

func (h *SubscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	page, err := h.subscriptionUsecase.GetChannelSubscribers(c.Request.Context(), c.Param("channelId"), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	page, err := h.subscriptionUsecase.GetSubscribedChannels(c.Request.Context(), c.Param("subscriberId"), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Subscribed channels fetched successfully")
}

type IDashboardHandler interface {
	GetChannelStats(c *gin.Context)
	GetChannelVideos(c *gin.Context)
}

type DashboardHandler struct {
	dashboardUsecase usecase.IDashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.IDashboardUsecase) IDashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	stats, err := h.dashboardUsecase.GetChannelStats(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	page, err := h.dashboardUsecase.GetChannelVideos(c.Request.Context(), actor(c), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Channel videos fetched successfully")
}
