package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/utils"
)

type ILikeUsecase interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID string) (*dto.ToggleLikeResponse, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID string) (*dto.ToggleLikeResponse, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID string) (*dto.ToggleLikeResponse, error)
	GetLikedVideos(ctx context.Context, actorID string, q dto.ListQuery) (*dto.PageList[model.LikedVideo], error)
}

type likeUsecase struct {
	likes    repository.ILike
	videos   repository.IVideo
	comments repository.IComment
	tweets   repository.ITweet
}

func NewLikeUsecase(likes repository.ILike, videos repository.IVideo, comments repository.IComment, tweets repository.ITweet) ILikeUsecase {
	return &likeUsecase{likes: likes, videos: videos, comments: comments, tweets: tweets}
}

func (u *likeUsecase) ToggleVideoLike(ctx context.Context, actorID, videoID string) (*dto.ToggleLikeResponse, error) {
	return u.toggle(ctx, actorID, videoID, model.LikeTargetVideo, func(ctx context.Context, id bson.ObjectID) error {
		_, err := u.videos.FindByID(ctx, id)
		return err
	})
}

func (u *likeUsecase) ToggleCommentLike(ctx context.Context, actorID, commentID string) (*dto.ToggleLikeResponse, error) {
	return u.toggle(ctx, actorID, commentID, model.LikeTargetComment, func(ctx context.Context, id bson.ObjectID) error {
		_, err := u.comments.FindByID(ctx, id)
		return err
	})
}

func (u *likeUsecase) ToggleTweetLike(ctx context.Context, actorID, tweetID string) (*dto.ToggleLikeResponse, error) {
	return u.toggle(ctx, actorID, tweetID, model.LikeTargetTweet, func(ctx context.Context, id bson.ObjectID) error {
		_, err := u.tweets.FindByID(ctx, id)
		return err
	})
}

func (u *likeUsecase) GetLikedVideos(ctx context.Context, actorID string, q dto.ListQuery) (*dto.PageList[model.LikedVideo], error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	videos, total, err := u.likes.LikedVideos(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(videos, q.Page, q.Limit, total), nil
}

func (u *likeUsecase) toggle(
	ctx context.Context,
	actorID, rawID string,
	target model.LikeTarget,
	exists func(context.Context, bson.ObjectID) error,
) (*dto.ToggleLikeResponse, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(rawID, string(target))
	if err != nil {
		return nil, err
	}
	if err := exists(ctx, id); err != nil {
		return nil, err
	}

	liked, err := toggle(ctx,
		func(ctx context.Context) (bool, error) {
			return u.likes.Remove(ctx, actor, target, id)
		},
		func(ctx context.Context) error {
			like, err := model.NewLike(actor, target, id, utils.GetCurrentTime())
			if err != nil {
				return err
			}
			return u.likes.Insert(ctx, like)
		},
	)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleLikeResponse{Liked: liked}, nil
}
