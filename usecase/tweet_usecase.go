package usecase

import (
	"context"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ITweetUsecase interface {
	CreateTweet(ctx context.Context, actorID, content string) (*model.Tweet, error)
	GetUserTweets(ctx context.Context, userID string, q dto.ListQuery) (*dto.PageList[model.TweetView], error)
	UpdateTweet(ctx context.Context, actorID, tweetID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, actorID, tweetID string) error
}

type tweetUsecase struct {
	tweets repository.ITweet
	users  repository.IUser
}

func NewTweetUsecase(tweets repository.ITweet, users repository.IUser) ITweetUsecase {
	return &tweetUsecase{tweets: tweets, users: users}
}

func (u *tweetUsecase) CreateTweet(ctx context.Context, actorID, content string) (*model.Tweet, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	content, err = requireContent(content)
	if err != nil {
		return nil, err
	}
	tweet := &model.Tweet{Owner: actor, Content: content}
	if err := u.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (u *tweetUsecase) GetUserTweets(ctx context.Context, userID string, q dto.ListQuery) (*dto.PageList[model.TweetView], error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if _, err := u.users.FindByID(ctx, owner); err != nil {
		return nil, err
	}
	tweets, total, err := u.tweets.ListByOwner(ctx, owner, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(tweets, q.Page, q.Limit, total), nil
}

func (u *tweetUsecase) UpdateTweet(ctx context.Context, actorID, tweetID, content string) (*model.Tweet, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	if _, err := parseID(tweetID, "tweet"); err != nil {
		return nil, err
	}
	content, err = requireContent(content)
	if err != nil {
		return nil, err
	}
	tweet, err := loadOwned(ctx, actor, tweetID, "tweet", u.tweets.FindByID, "You are not allowed to update this tweet")
	if err != nil {
		return nil, err
	}
	return u.tweets.UpdateContent(ctx, tweet.ID, content)
}

func (u *tweetUsecase) DeleteTweet(ctx context.Context, actorID, tweetID string) error {
	actor, err := parseActor(actorID)
	if err != nil {
		return err
	}
	tweet, err := loadOwned(ctx, actor, tweetID, "tweet", u.tweets.FindByID, "You are not allowed to delete this tweet")
	if err != nil {
		return err
	}
	return u.tweets.Delete(ctx, tweet.ID)
}
