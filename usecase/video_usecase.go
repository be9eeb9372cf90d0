package usecase

import (
	"context"
	"strings"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
)

type IVideoUsecase interface {
	GetAllVideos(ctx context.Context, q dto.ListQuery) (*dto.PageList[model.VideoView], error)
	PublishVideo(ctx context.Context, actorID string, in dto.PublishVideoInput) (*model.Video, error)
	GetVideoByID(ctx context.Context, videoID, viewerID string) (*model.VideoView, error)
	UpdateVideo(ctx context.Context, actorID, videoID string, in dto.UpdateVideoInput) (*model.Video, CleanupReport, error)
	DeleteVideo(ctx context.Context, actorID, videoID string) (CleanupReport, error)
	TogglePublishStatus(ctx context.Context, actorID, videoID string) (*dto.PublishStatusResponse, error)
}

type videoUsecase struct {
	videos  repository.IVideo
	users   repository.IUser
	probe   repository.IDurationProbe
	assets  repository.IAssetStore
	events  repository.IEventPublisher
	cleaner assetCleaner
}

func NewVideoUsecase(
	videos repository.IVideo,
	users repository.IUser,
	probe repository.IDurationProbe,
	assets repository.IAssetStore,
	events repository.IEventPublisher,
) IVideoUsecase {
	return &videoUsecase{
		videos:  videos,
		users:   users,
		probe:   probe,
		assets:  assets,
		events:  events,
		cleaner: assetCleaner{assets: assets, events: events},
	}
}

// GetAllVideos lists published videos, optionally narrowed to one owner and
// a free-text search.
func (u *videoUsecase) GetAllVideos(ctx context.Context, q dto.ListQuery) (*dto.PageList[model.VideoView], error) {
	filter := repository.VideoFilter{
		Owner:         parseViewer(q.UserID),
		PublishedOnly: true,
		Search:        q.Query,
	}
	videos, total, err := u.videos.List(ctx, filter, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(videos, q.Page, q.Limit, total), nil
}

// PublishVideo checks the duration before anything is uploaded, then uploads
// the video and the thumbnail. The record is written only once both assets
// are hosted; uploaded assets are removed again if a later step fails.
func (u *videoUsecase) PublishVideo(ctx context.Context, actorID string, in dto.PublishVideoInput) (*model.Video, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, apperror.NewInvalidInput("Title is required")
	}
	if in.VideoFilePath == "" {
		return nil, apperror.NewInvalidInput("Video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, apperror.NewInvalidInput("Thumbnail is required")
	}

	duration, err := u.probe.Duration(ctx, in.VideoFilePath)
	if err != nil {
		return nil, apperror.Wrap(apperror.InvalidInput, "Unable to read video duration", err)
	}
	if duration > model.MaxVideoDurationSeconds {
		return nil, apperror.NewInvalidInput("Video duration can't be greater than 10 minutes")
	}

	videoURL, err := u.assets.Upload(ctx, in.VideoFilePath)
	if err != nil {
		return nil, apperror.NewUpstream("Something went wrong while uploading video", err)
	}
	thumbnailURL, err := u.assets.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		u.cleaner.cleanup(ctx, "thumbnail upload failed", videoURL)
		return nil, apperror.NewUpstream("Something went wrong while uploading thumbnail", err)
	}

	video := &model.Video{
		Owner:       actor,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Title:       title,
		Description: description,
		Duration:    duration,
		IsPublished: true,
	}
	if err := u.videos.Create(ctx, video); err != nil {
		u.cleaner.cleanup(ctx, "video record not created", videoURL, thumbnailURL)
		return nil, apperror.NewInternal("Something went wrong while saving video details", err)
	}

	notify(ctx, u.events, model.NewEvent(model.EventVideoPublished, map[string]interface{}{
		"videoId": video.ID.Hex(),
		"owner":   actor.Hex(),
	}))
	return video, nil
}

// GetVideoByID hides unpublished videos from everyone but their owner. Each
// read counts as a view and lands in the viewer's watch history.
func (u *videoUsecase) GetVideoByID(ctx context.Context, videoID, viewerID string) (*model.VideoView, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	viewer := parseViewer(viewerID)

	video, err := u.videos.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && (viewer == nil || *viewer != video.Owner) {
		return nil, apperror.NewNotFound("Video not found")
	}

	if err := u.videos.IncrementViews(ctx, id); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"error": err, "videoId": videoID}).Warn("Failed to count view")
	} else {
		video.Views++
	}
	if viewer != nil {
		if err := u.users.PushWatchHistory(ctx, *viewer, id); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "videoId": videoID}).Warn("Failed to record watch history")
		}
	}
	return video, nil
}

// UpdateVideo changes title, description and thumbnail only. A new thumbnail
// is uploaded before anything is persisted; the old one is deleted last and
// its failure is only reported.
func (u *videoUsecase) UpdateVideo(ctx context.Context, actorID, videoID string, in dto.UpdateVideoInput) (*model.Video, CleanupReport, error) {
	var report CleanupReport
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, report, err
	}
	if _, err := parseID(videoID, "video"); err != nil {
		return nil, report, err
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" && description == "" && in.ThumbnailPath == "" {
		return nil, report, apperror.NewInvalidInput("Nothing to update: provide a title, description or thumbnail")
	}

	video, err := loadOwned(ctx, actor, videoID, "video", u.videos.FindByID, "You are not allowed to update this video")
	if err != nil {
		return nil, report, err
	}

	fields := map[string]interface{}{}
	if title != "" {
		fields["title"] = title
	}
	if description != "" {
		fields["description"] = description
	}
	var newThumbnail string
	if in.ThumbnailPath != "" {
		newThumbnail, err = u.assets.Upload(ctx, in.ThumbnailPath)
		if err != nil {
			return nil, report, apperror.NewUpstream("Failed to upload new thumbnail", err)
		}
		fields["thumbnail"] = newThumbnail
	}

	updated, err := u.videos.Update(ctx, video.ID, fields)
	if err != nil {
		if newThumbnail != "" {
			u.cleaner.cleanup(ctx, "video update failed", newThumbnail)
		}
		return nil, report, err
	}
	if newThumbnail != "" && video.Thumbnail != newThumbnail {
		report = u.cleaner.cleanup(ctx, "thumbnail replaced", video.Thumbnail)
	}
	return updated, report, nil
}

// DeleteVideo removes the record, then the hosted assets. Comments and likes
// pointing at the video are left in place.
func (u *videoUsecase) DeleteVideo(ctx context.Context, actorID, videoID string) (CleanupReport, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return CleanupReport{}, err
	}
	video, err := loadOwned(ctx, actor, videoID, "video", u.videos.FindByID, "You are not allowed to delete this video")
	if err != nil {
		return CleanupReport{}, err
	}
	if err := u.videos.Delete(ctx, video.ID); err != nil {
		return CleanupReport{}, err
	}

	report := u.cleaner.cleanup(ctx, "video deleted", video.VideoFile, video.Thumbnail)
	notify(ctx, u.events, model.NewEvent(model.EventVideoDeleted, map[string]interface{}{
		"videoId": video.ID.Hex(),
		"owner":   actor.Hex(),
	}))
	return report, nil
}

func (u *videoUsecase) TogglePublishStatus(ctx context.Context, actorID, videoID string) (*dto.PublishStatusResponse, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	video, err := loadOwned(ctx, actor, videoID, "video", u.videos.FindByID, "You are not allowed to change this video's publish status")
	if err != nil {
		return nil, err
	}
	updated, err := u.videos.Update(ctx, video.ID, map[string]interface{}{"isPublished": !video.IsPublished})
	if err != nil {
		return nil, err
	}
	return &dto.PublishStatusResponse{IsPublished: updated.IsPublished}, nil
}

