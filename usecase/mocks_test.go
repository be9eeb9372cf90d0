package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

// Mock implementations

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) PushWatchHistory(ctx context.Context, id, videoID bson.ObjectID) error {
	args := m.Called(ctx, id, videoID)
	return args.Error(0)
}

func (m *MockUserRepository) ChannelProfile(ctx context.Context, username string, viewer *bson.ObjectID) (*model.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelProfile), args.Error(1)
}

func (m *MockUserRepository) WatchHistory(ctx context.Context, id bson.ObjectID) ([]model.VideoView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VideoView), args.Error(1)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoRepository) Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.Video, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoRepository) Detail(ctx context.Context, id bson.ObjectID) (*model.VideoView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoView), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, filter repository.VideoFilter, q dto.ListQuery) ([]model.VideoView, int64, error) {
	args := m.Called(ctx, filter, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.VideoView), args.Get(1).(int64), args.Error(2)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID bson.ObjectID, q dto.ListQuery) ([]model.CommentView, int64, error) {
	args := m.Called(ctx, videoID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.CommentView), args.Get(1).(int64), args.Error(2)
}

type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Tweet, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTweetRepository) ListByOwner(ctx context.Context, owner bson.ObjectID, q dto.ListQuery) ([]model.TweetView, int64, error) {
	args := m.Called(ctx, owner, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.TweetView), args.Get(1).(int64), args.Error(2)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Insert(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Remove(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	args := m.Called(ctx, subscriber, channel)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) Subscribers(ctx context.Context, channel bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error) {
	args := m.Called(ctx, channel, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.SubscriptionView), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) SubscribedChannels(ctx context.Context, subscriber bson.ObjectID, q dto.ListQuery) ([]model.SubscriptionView, int64, error) {
	args := m.Called(ctx, subscriber, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.SubscriptionView), args.Get(1).(int64), args.Error(2)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) VideoStats(ctx context.Context, owner bson.ObjectID) (*model.VideoStats, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoStats), args.Error(1)
}

func (m *MockDashboardRepository) TweetStats(ctx context.Context, owner bson.ObjectID) (*model.TweetStats, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TweetStats), args.Error(1)
}

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type MockDurationProbe struct {
	mock.Mock
}

func (m *MockDurationProbe) Duration(ctx context.Context, localPath string) (int, error) {
	args := m.Called(ctx, localPath)
	return args.Int(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type MockTokenDenylist struct {
	mock.Mock
}

func (m *MockTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// memLikes is an in-memory ILike keyed the way the unique indexes are, so
// toggle sequences can be checked end to end.
type memLikes struct {
	likes map[string]*model.Like
}

func newMemLikes() *memLikes {
	return &memLikes{likes: map[string]*model.Like{}}
}

func likeKey(likedBy bson.ObjectID, target model.LikeTarget, id bson.ObjectID) string {
	return likedBy.Hex() + "/" + string(target) + "/" + id.Hex()
}

func (m *memLikes) Insert(_ context.Context, like *model.Like) error {
	target, id, ok := like.Target()
	if !ok {
		return errInvalidLike
	}
	key := likeKey(like.LikedBy, target, id)
	if _, exists := m.likes[key]; exists {
		return errDuplicateLike
	}
	m.likes[key] = like
	return nil
}

func (m *memLikes) Remove(_ context.Context, likedBy bson.ObjectID, target model.LikeTarget, id bson.ObjectID) (bool, error) {
	key := likeKey(likedBy, target, id)
	if _, exists := m.likes[key]; !exists {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *memLikes) CountByTarget(_ context.Context, target model.LikeTarget, id bson.ObjectID) (int64, error) {
	var n int64
	for _, l := range m.likes {
		if t, tid, ok := l.Target(); ok && t == target && tid == id {
			n++
		}
	}
	return n, nil
}

func (m *memLikes) LikedVideos(context.Context, bson.ObjectID, dto.ListQuery) ([]model.LikedVideo, int64, error) {
	return nil, 0, nil
}
