package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

type IDashboardUsecase interface {
	GetChannelStats(ctx context.Context, actorID string) (*model.ChannelStats, error)
	GetChannelVideos(ctx context.Context, actorID string, q dto.ListQuery) (*dto.PageList[model.VideoView], error)
}

type dashboardUsecase struct {
	dashboard repository.IDashboard
	videos    repository.IVideo
}

func NewDashboardUsecase(dashboard repository.IDashboard, videos repository.IVideo) IDashboardUsecase {
	return &dashboardUsecase{dashboard: dashboard, videos: videos}
}

// GetChannelStats recomputes both rollups on every call. The two reads are
// not taken from a single snapshot.
func (u *dashboardUsecase) GetChannelStats(ctx context.Context, actorID string) (*model.ChannelStats, error) {
	owner, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}

	var (
		videoStats *model.VideoStats
		tweetStats *model.TweetStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videoStats, err = u.dashboard.VideoStats(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		tweetStats, err = u.dashboard.TweetStats(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &model.ChannelStats{}
	if videoStats != nil {
		stats.VideoStats = *videoStats
	}
	if tweetStats != nil {
		stats.TweetStats = *tweetStats
	}
	return stats, nil
}

// GetChannelVideos is the owner's own listing, unpublished videos included.
func (u *dashboardUsecase) GetChannelVideos(ctx context.Context, actorID string, q dto.ListQuery) (*dto.PageList[model.VideoView], error) {
	owner, err := parseActor(actorID)
	if err != nil {
		return nil, err
	}
	q.SortBy, q.SortType = "", ""
	videos, total, err := u.videos.List(ctx, repository.VideoFilter{Owner: &owner}, q)
	if err != nil {
		return nil, err
	}
	return dto.NewPageList(videos, q.Page, q.Limit, total), nil
}
