package usecase

import (
	"context"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type ISubscriptionUsecase interface {
	ToggleSubscription(ctx context.Context, actorID, channelID string) (*dto.ToggleSubscriptionResponse, error)
	GetChannelSubscribers(ctx context.Context, channelID string, q dto.ListQuery) (*dto.PageList[model.SubscriptionView], error)
	GetSubscribedChannels(ctx context.Context, subscriberID string, q dto.ListQuery) (*dto.PageList[model.SubscriptionView], error)
}

type subscriptionUsecase struct {
	subscriptions repository.ISubscription
	users         repository.IUser
}

func NewSubscriptionUsecase(subscriptions repository.ISubscription, users repository.IUser) ISubscriptionUsecase {
	return &subscriptionUsecase{subscriptions: subscriptions, users: users}
}

// ToggleSubscription shares the like toggle's merge policy: a duplicate
// subscription created concurrently counts as subscribed.
func (u *subscriptionUsecase) ToggleSubscription(ctx context.Context, actorID, channelID string) (*dto.ToggleSubscriptionResponse, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	if channel == actor {
		return nil, apperror.NewInvalidInput("You cannot subscribe to your own channel")
	}
	if _, err := u.users.FindByID(ctx, channel); err != nil {
		return nil, err
	}

	subscribed, err := toggle(ctx,
		func(ctx context.Context) (bool, error) {
			return u.subscriptions.Remove(ctx, actor, channel)
		},
		func(ctx context.Context) error {
			return u.subscriptions.Insert(ctx, &model.Subscription{Subscriber: actor, Channel: channel})
		},
	)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleSubscriptionResponse{Subscribed: subscribed}, nil
}

func (u *subscriptionUsecase) GetChannelSubscribers(ctx context.Context, channelID string, q dto.ListQuery) (*dto.PageList[model.SubscriptionView], error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	subs, total, err := u.subscriptions.Subscribers(ctx, channel, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(subs, q.Page, q.Limit, total), nil
}

func (u *subscriptionUsecase) GetSubscribedChannels(ctx context.Context, subscriberID string, q dto.ListQuery) (*dto.PageList[model.SubscriptionView], error) {
	subscriber, err := parseID(subscriberID, "subscriber")
	if err != nil {
		return nil, err
	}
	subs, total, err := u.subscriptions.SubscribedChannels(ctx, subscriber, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(subs, q.Page, q.Limit, total), nil
}
