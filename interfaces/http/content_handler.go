package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type ICommentHandler interface {
	GetVideoComments(c *gin.Context)
	AddComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type CommentHandler struct {
	commentUsecase usecase.ICommentUsecase
}

func NewCommentHandler(commentUsecase usecase.ICommentUsecase) ICommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

func (h *CommentHandler) GetVideoComments(c *gin.Context) {
	page, err := h.commentUsecase.GetVideoComments(c.Request.Context(), c.Param("videoId"), actor(c), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Comments fetched successfully")
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	comment, err := h.commentUsecase.AddComment(c.Request.Context(), actor(c), c.Param("videoId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	comment, err := h.commentUsecase.UpdateComment(c.Request.Context(), actor(c), c.Param("commentId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentUsecase.DeleteComment(c.Request.Context(), actor(c), c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}

type ITweetHandler interface {
	CreateTweet(c *gin.Context)
	GetUserTweets(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
}

type TweetHandler struct {
	tweetUsecase usecase.ITweetUsecase
}

func NewTweetHandler(tweetUsecase usecase.ITweetUsecase) ITweetHandler {
	return &TweetHandler{tweetUsecase: tweetUsecase}
}

func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	tweet, err := h.tweetUsecase.CreateTweet(c.Request.Context(), actor(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) GetUserTweets(c *gin.Context) {
	page, err := h.tweetUsecase.GetUserTweets(c.Request.Context(), c.Param("userId"), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Tweets fetched successfully")
}

func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	var req dto.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, ErrorUnmarshal)
		return
	}
	tweet, err := h.tweetUsecase.UpdateTweet(c.Request.Context(), actor(c), c.Param("tweetId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	if err := h.tweetUsecase.DeleteTweet(c.Request.Context(), actor(c), c.Param("tweetId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
