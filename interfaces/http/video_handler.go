package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/infrastructure/logger"
	"vidtube/usecase"
)

type IVideoHandler interface {
	GetAllVideos(c *gin.Context)
	PublishVideo(c *gin.Context)
	GetVideoByID(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	TogglePublishStatus(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
	uploadDir    string
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase, uploadDir string) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, uploadDir: uploadDir}
}

// GetAllVideos handles GET /api/v1/videos
func (h *VideoHandler) GetAllVideos(c *gin.Context) {
	page, err := h.videoUsecase.GetAllVideos(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		respond(c, http.StatusBadRequest, nil, "Invalid video form")
		return
	}

	files := newUploads(h.uploadDir)
	defer files.cleanup()
	videoPath, err := files.save(c, "videoFile")
	if err != nil {
		respondError(c, err)
		return
	}
	thumbnailPath, err := files.save(c, "thumbnail")
	if err != nil {
		respondError(c, err)
		return
	}

	video, err := h.videoUsecase.PublishVideo(c.Request.Context(), actor(c), dto.PublishVideoInput{
		PublishVideoRequest: req,
		VideoFilePath:       videoPath,
		ThumbnailPath:       thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "Video published successfully")
}

// GetVideoByID handles GET /api/v1/videos/:videoId
func (h *VideoHandler) GetVideoByID(c *gin.Context) {
	video, err := h.videoUsecase.GetVideoByID(c.Request.Context(), c.Param("videoId"), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:videoId
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	var in dto.UpdateVideoInput
	if err := c.ShouldBind(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid video form")
		return
	}
	files := newUploads(h.uploadDir)
	defer files.cleanup()
	thumbnailPath, err := files.save(c, "thumbnail")
	if err != nil {
		respondError(c, err)
		return
	}
	in.ThumbnailPath = thumbnailPath

	video, _, err := h.videoUsecase.UpdateVideo(c.Request.Context(), actor(c), c.Param("videoId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:videoId
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	if _, err := h.videoUsecase.DeleteVideo(c.Request.Context(), actor(c), c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

// TogglePublishStatus handles PATCH /api/v1/videos/toggle/publish/:videoId
func (h *VideoHandler) TogglePublishStatus(c *gin.Context) {
	res, err := h.videoUsecase.TogglePublishStatus(c.Request.Context(), actor(c), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Video publish status toggled successfully")
}
