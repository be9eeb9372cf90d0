package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ICommentUsecase interface {
	GetVideoComments(ctx context.Context, videoID, viewerID string, q dto.ListQuery) (*dto.PageList[model.CommentView], error)
	AddComment(ctx context.Context, actorID, videoID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actorID, commentID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID, commentID string) error
}

type commentUsecase struct {
	comments repository.IComment
	videos   repository.IVideo
}

func NewCommentUsecase(comments repository.IComment, videos repository.IVideo) ICommentUsecase {
	return &commentUsecase{comments: comments, videos: videos}
}

func (u *commentUsecase) GetVideoComments(ctx context.Context, videoID, viewerID string, q dto.ListQuery) (*dto.PageList[model.CommentView], error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	if _, err := u.visibleVideo(ctx, id, parseViewer(viewerID)); err != nil {
		return nil, err
	}
	comments, total, err := u.comments.ListByVideo(ctx, id, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(comments, q.Page, q.Limit, total), nil
}

func (u *commentUsecase) AddComment(ctx context.Context, actorID, videoID, content string) (*model.Comment, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(videoID, "video")
	if err != nil {
		return nil, err
	}
	content, err = requireContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := u.visibleVideo(ctx, id, &actor); err != nil {
		return nil, err
	}

	comment := &model.Comment{Video: id, Owner: actor, Content: content}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (u *commentUsecase) UpdateComment(ctx context.Context, actorID, commentID, content string) (*model.Comment, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	if _, err := parseID(commentID, "comment"); err != nil {
		return nil, err
	}
	content, err = requireContent(content)
	if err != nil {
		return nil, err
	}
	comment, err := loadOwned(ctx, actor, commentID, "comment", u.comments.FindByID, "You are not allowed to update this comment")
	if err != nil {
		return nil, err
	}
	return u.comments.UpdateContent(ctx, comment.ID, content)
}

// DeleteComment leaves likes on the comment in place.
func (u *commentUsecase) DeleteComment(ctx context.Context, actorID, commentID string) error {
	actor, err := parseActor(actorID)
	if err != nil {
		return err
	}
	comment, err := loadOwned(ctx, actor, commentID, "comment", u.comments.FindByID, "You are not allowed to delete this comment")
	if err != nil {
		return err
	}
	return u.comments.Delete(ctx, comment.ID)
}

// visibleVideo loads a video, hiding unpublished ones from non-owners.
func (u *commentUsecase) visibleVideo(ctx context.Context, id bson.ObjectID, viewer *bson.ObjectID) (*model.Video, error) {
	video, err := u.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && (viewer == nil || *viewer != video.Owner) {
		return nil, apperror.NewNotFound("Video not found")
	}
	return video, nil
}

func requireContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.NewInvalidInput("Content is required")
	}
	return content, nil
}
