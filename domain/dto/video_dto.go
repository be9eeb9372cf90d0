package dto

type PublishVideoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type PublishVideoInput struct {
	PublishVideoRequest
	VideoFilePath string
	ThumbnailPath string
}

// UpdateVideoInput changes only non-empty fields. A non-empty ThumbnailPath
// replaces the thumbnail.
type UpdateVideoInput struct {
	Title         string `form:"title"`
	Description   string `form:"description"`
	ThumbnailPath string `form:"-"`
}

type PublishStatusResponse struct {
	IsPublished bool `json:"isPublished"`
}
