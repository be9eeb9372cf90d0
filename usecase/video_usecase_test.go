package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type videoFixture struct {
	videos *MockVideoRepository
	users  *MockUserRepository
	probe  *MockDurationProbe
	assets *MockAssetStore
	events *MockEventPublisher
	uc     IVideoUsecase
}

func newVideoFixture() *videoFixture {
	f := &videoFixture{
		videos: new(MockVideoRepository),
		users:  new(MockUserRepository),
		probe:  new(MockDurationProbe),
		assets: new(MockAssetStore),
		events: new(MockEventPublisher),
	}
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.uc = NewVideoUsecase(f.videos, f.users, f.probe, f.assets, f.events)
	return f
}

func publishedTypes(events *MockEventPublisher) []string {
	var types []string
	for _, call := range events.Calls {
		if call.Method == "Publish" {
			types = append(types, call.Arguments.Get(1).(model.Event).Type)
		}
	}
	return types
}

func publishInput() dto.PublishVideoInput {
	return dto.PublishVideoInput{
		PublishVideoRequest: dto.PublishVideoRequest{Title: " Intro ", Description: "first upload"},
		VideoFilePath:       "/tmp/intro.mp4",
		ThumbnailPath:       "/tmp/intro.png",
	}
}

func TestVideoUsecase_PublishVideo(t *testing.T) {
	ctx := context.Background()
	actor := bson.NewObjectID()

	t.Run("too long is rejected before any upload", func(t *testing.T) {
		f := newVideoFixture()
		f.probe.On("Duration", mock.Anything, "/tmp/intro.mp4").Return(601, nil)

		video, err := f.uc.PublishVideo(ctx, actor.Hex(), publishInput())

		assert.Nil(t, video)
		assert.True(t, apperror.Is(err, apperror.InvalidInput))
		f.assets.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("exactly ten minutes is accepted", func(t *testing.T) {
		f := newVideoFixture()
		f.probe.On("Duration", mock.Anything, "/tmp/intro.mp4").Return(600, nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.mp4").Return("https://cdn/v.mp4", nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.png").Return("https://cdn/t.png", nil)
		f.videos.On("Create", mock.Anything, mock.AnythingOfType("*model.Video")).Return(nil)

		video, err := f.uc.PublishVideo(ctx, actor.Hex(), publishInput())

		require.NoError(t, err)
		assert.Equal(t, "Intro", video.Title)
		assert.Equal(t, actor, video.Owner)
		assert.Equal(t, 600, video.Duration)
		assert.True(t, video.IsPublished)
		assert.Equal(t, "https://cdn/v.mp4", video.VideoFile)
		assert.Equal(t, "https://cdn/t.png", video.Thumbnail)
		assert.Equal(t, []string{model.EventVideoPublished}, publishedTypes(f.events))
	})

	t.Run("missing title", func(t *testing.T) {
		f := newVideoFixture()
		in := publishInput()
		in.Title = "   "

		_, err := f.uc.PublishVideo(ctx, actor.Hex(), in)

		assert.True(t, apperror.Is(err, apperror.InvalidInput))
		f.probe.AssertNotCalled(t, "Duration", mock.Anything, mock.Anything)
	})

	t.Run("thumbnail upload failure removes the uploaded video", func(t *testing.T) {
		f := newVideoFixture()
		f.probe.On("Duration", mock.Anything, mock.Anything).Return(300, nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.mp4").Return("https://cdn/v.mp4", nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.png").Return("", errors.New("bucket unavailable"))
		f.assets.On("Delete", mock.Anything, "https://cdn/v.mp4").Return(nil)

		_, err := f.uc.PublishVideo(ctx, actor.Hex(), publishInput())

		assert.True(t, apperror.Is(err, apperror.UpstreamFailure))
		f.assets.AssertCalled(t, "Delete", mock.Anything, "https://cdn/v.mp4")
		f.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure removes both assets", func(t *testing.T) {
		f := newVideoFixture()
		f.probe.On("Duration", mock.Anything, mock.Anything).Return(300, nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.mp4").Return("https://cdn/v.mp4", nil)
		f.assets.On("Upload", mock.Anything, "/tmp/intro.png").Return("https://cdn/t.png", nil)
		f.assets.On("Delete", mock.Anything, mock.Anything).Return(nil)
		f.videos.On("Create", mock.Anything, mock.Anything).Return(errStore)

		_, err := f.uc.PublishVideo(ctx, actor.Hex(), publishInput())

		assert.True(t, apperror.Is(err, apperror.Internal))
		f.assets.AssertNumberOfCalls(t, "Delete", 2)
		assert.Empty(t, publishedTypes(f.events))
	})
}

func TestVideoUsecase_UpdateVideo_NonOwner(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	videoID := bson.NewObjectID()

	f := newVideoFixture()
	f.videos.On("FindByID", mock.Anything, videoID).Return(&model.Video{ID: videoID, Owner: owner}, nil)

	_, _, err := f.uc.UpdateVideo(ctx, bson.NewObjectID().Hex(), videoID.Hex(), dto.UpdateVideoInput{
		Title:         "hijacked",
		ThumbnailPath: "/tmp/new.png",
	})

	assert.True(t, apperror.Is(err, apperror.Forbidden))
	f.videos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	f.assets.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestVideoUsecase_UpdateVideo_ReplacesThumbnail(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	videoID := bson.NewObjectID()

	f := newVideoFixture()
	f.videos.On("FindByID", mock.Anything, videoID).
		Return(&model.Video{ID: videoID, Owner: owner, Thumbnail: "https://cdn/old.png"}, nil)
	f.assets.On("Upload", mock.Anything, "/tmp/new.png").Return("https://cdn/new.png", nil)
	f.assets.On("Delete", mock.Anything, "https://cdn/old.png").Return(errors.New("access denied"))
	f.videos.On("Update", mock.Anything, videoID, map[string]interface{}{"thumbnail": "https://cdn/new.png"}).
		Return(&model.Video{ID: videoID, Owner: owner, Thumbnail: "https://cdn/new.png"}, nil)

	video, report, err := f.uc.UpdateVideo(ctx, owner.Hex(), videoID.Hex(), dto.UpdateVideoInput{ThumbnailPath: "/tmp/new.png"})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/new.png", video.Thumbnail)
	assert.False(t, report.OK())
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "https://cdn/old.png", report.Failed[0].URL)
	assert.Equal(t, []string{model.EventAssetCleanupFailed}, publishedTypes(f.events))
}

func TestVideoUsecase_UpdateVideo_NothingToUpdate(t *testing.T) {
	f := newVideoFixture()
	_, _, err := f.uc.UpdateVideo(context.Background(), bson.NewObjectID().Hex(), bson.NewObjectID().Hex(), dto.UpdateVideoInput{})
	assert.True(t, apperror.Is(err, apperror.InvalidInput))
	f.videos.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestVideoUsecase_DeleteVideo_CleanupFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	videoID := bson.NewObjectID()

	f := newVideoFixture()
	f.videos.On("FindByID", mock.Anything, videoID).Return(&model.Video{
		ID:        videoID,
		Owner:     owner,
		VideoFile: "https://cdn/v.mp4",
		Thumbnail: "https://cdn/t.png",
	}, nil)
	f.videos.On("Delete", mock.Anything, videoID).Return(nil)
	f.assets.On("Delete", mock.Anything, "https://cdn/v.mp4").Return(errors.New("timeout"))
	f.assets.On("Delete", mock.Anything, "https://cdn/t.png").Return(nil)

	report, err := f.uc.DeleteVideo(ctx, owner.Hex(), videoID.Hex())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/t.png"}, report.Deleted)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "https://cdn/v.mp4", report.Failed[0].URL)
	assert.ElementsMatch(t, []string{model.EventAssetCleanupFailed, model.EventVideoDeleted}, publishedTypes(f.events))
}

func TestVideoUsecase_DeleteVideo_NonOwner(t *testing.T) {
	ctx := context.Background()
	videoID := bson.NewObjectID()

	f := newVideoFixture()
	f.videos.On("FindByID", mock.Anything, videoID).Return(&model.Video{ID: videoID, Owner: bson.NewObjectID()}, nil)

	_, err := f.uc.DeleteVideo(ctx, bson.NewObjectID().Hex(), videoID.Hex())

	assert.True(t, apperror.Is(err, apperror.Forbidden))
	f.videos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.assets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVideoUsecase_TogglePublishStatus(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	videoID := bson.NewObjectID()

	f := newVideoFixture()
	f.videos.On("FindByID", mock.Anything, videoID).Return(&model.Video{ID: videoID, Owner: owner, IsPublished: true}, nil)
	f.videos.On("Update", mock.Anything, videoID, map[string]interface{}{"isPublished": false}).
		Return(&model.Video{ID: videoID, Owner: owner, IsPublished: false}, nil)

	res, err := f.uc.TogglePublishStatus(ctx, owner.Hex(), videoID.Hex())

	require.NoError(t, err)
	assert.False(t, res.IsPublished)
}

func TestVideoUsecase_GetAllVideos_OnlyPublished(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	q := dto.NewListQuery("", "")
	q.UserID = owner.Hex()
	q.Query = "intro"

	f := newVideoFixture()
	f.videos.On("List", mock.Anything, repository.VideoFilter{Owner: &owner, PublishedOnly: true, Search: "intro"}, q).
		Return([]model.VideoView{{ID: bson.NewObjectID(), IsPublished: true}}, int64(11), nil)

	page, err := f.uc.GetAllVideos(ctx, q)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, dto.DefaultPage, page.Page)
	assert.Equal(t, dto.DefaultLimit, page.Limit)
}

func TestVideoUsecase_GetAllVideos_TotalAndUnpublish(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var seeded []*model.Video
	for i := 0; i < 5; i++ {
		seeded = append(seeded, &model.Video{
			ID:          bson.NewObjectID(),
			Owner:       owner,
			Title:       "clip",
			IsPublished: true,
			CreatedAt:   start.Add(time.Duration(i) * time.Hour),
		})
	}
	seeded = append(seeded, &model.Video{ID: bson.NewObjectID(), Owner: owner, Title: "draft", CreatedAt: start})

	videos := newMemVideos(seeded...)
	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil)
	uc := NewVideoUsecase(videos, new(MockUserRepository), new(MockDurationProbe), new(MockAssetStore), events)

	ids := func(items []model.VideoView) []bson.ObjectID {
		out := make([]bson.ObjectID, 0, len(items))
		for _, v := range items {
			out = append(out, v.ID)
		}
		return out
	}

	q := dto.NewListQuery("2", "2")
	page, err := uc.GetAllVideos(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total, "total counts every match, not the page")
	assert.Equal(t, []bson.ObjectID{seeded[2].ID, seeded[1].ID}, ids(page.Items))

	last, err := uc.GetAllVideos(ctx, dto.NewListQuery("3", "2"))
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
	assert.Equal(t, int64(5), last.Total)

	hidden := seeded[4]
	res, err := uc.TogglePublishStatus(ctx, owner.Hex(), hidden.ID.Hex())
	require.NoError(t, err)
	require.False(t, res.IsPublished)

	all, err := uc.GetAllVideos(ctx, dto.NewListQuery("1", "10"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	assert.NotContains(t, ids(all.Items), hidden.ID)
	assert.NotContains(t, ids(all.Items), seeded[5].ID)

	res, err = uc.TogglePublishStatus(ctx, owner.Hex(), hidden.ID.Hex())
	require.NoError(t, err)
	require.True(t, res.IsPublished)
	all, err = uc.GetAllVideos(ctx, dto.NewListQuery("1", "10"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.Total)
	assert.Equal(t, hidden.ID, all.Items[0].ID)
}

func TestVideoUsecase_GetVideoByID(t *testing.T) {
	ctx := context.Background()
	owner := bson.NewObjectID()
	viewer := bson.NewObjectID()
	videoID := bson.NewObjectID()

	t.Run("unpublished is hidden from others", func(t *testing.T) {
		f := newVideoFixture()
		f.videos.On("Detail", mock.Anything, videoID).Return(&model.VideoView{ID: videoID, Owner: owner}, nil)

		_, err := f.uc.GetVideoByID(ctx, videoID.Hex(), viewer.Hex())

		assert.True(t, apperror.Is(err, apperror.NotFound))
		f.videos.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})

	t.Run("counts the view and records history", func(t *testing.T) {
		f := newVideoFixture()
		f.videos.On("Detail", mock.Anything, videoID).Return(&model.VideoView{ID: videoID, Owner: owner, IsPublished: true, Views: 4}, nil)
		f.videos.On("IncrementViews", mock.Anything, videoID).Return(nil)
		f.users.On("PushWatchHistory", mock.Anything, viewer, videoID).Return(nil)

		video, err := f.uc.GetVideoByID(ctx, videoID.Hex(), viewer.Hex())

		require.NoError(t, err)
		assert.Equal(t, int64(5), video.Views)
		f.users.AssertExpectations(t)
	})

	t.Run("anonymous viewer has no history", func(t *testing.T) {
		f := newVideoFixture()
		f.videos.On("Detail", mock.Anything, videoID).Return(&model.VideoView{ID: videoID, Owner: owner, IsPublished: true}, nil)
		f.videos.On("IncrementViews", mock.Anything, videoID).Return(nil)

		_, err := f.uc.GetVideoByID(ctx, videoID.Hex(), "")

		require.NoError(t, err)
		f.users.AssertNotCalled(t, "PushWatchHistory", mock.Anything, mock.Anything, mock.Anything)
	})
}
