package persistence

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const videoNotFound = "Video not found"

type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *MongoDb) repository.IVideo {
	return &VideoRepository{coll: db.Collection(aggregation.CollVideos)}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	now := time.Now().UTC()
	if video.ID.IsZero() {
		video.ID = bson.NewObjectID()
	}
	video.CreatedAt, video.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, video)
	return mapError(err, "insert video", videoNotFound)
}

func (r *VideoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Video, error) {
	var video model.Video
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&video); err != nil {
		return nil, mapError(err, "find video", videoNotFound)
	}
	return &video, nil
}

func (r *VideoRepository) Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.Video, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var video model.Video
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&video)
	if err != nil {
		return nil, mapError(err, "update video", videoNotFound)
	}
	return &video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return mapError(err, "delete video", videoNotFound)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound(videoNotFound)
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}},
	)
	return mapError(err, "increment views", videoNotFound)
}

func (r *VideoRepository) Detail(ctx context.Context, id bson.ObjectID) (*model.VideoView, error) {
	var view model.VideoView
	found, err := aggregateOne(ctx, r.coll, aggregation.VideoDetail(id), &view)
	if err != nil {
		return nil, mapError(err, "aggregate video", videoNotFound)
	}
	if !found {
		return nil, apperror.NewNotFound(videoNotFound)
	}
	return &view, nil
}

// List runs the page query and the count query concurrently against the
// same predicate.
func (r *VideoRepository) List(ctx context.Context, filter repository.VideoFilter, q dto.ListQuery) ([]model.VideoView, int64, error) {
	list, match := videoListQuery(filter, q)

	videos := []model.VideoView{}
	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return aggregateAll(gctx, r.coll, list, &videos)
	})
	g.Go(func() error {
		var err error
		total, err = r.coll.CountDocuments(gctx, match)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, mapError(err, "list videos", videoNotFound)
	}
	return videos, total, nil
}

// videoListQuery returns the paged listing pipeline and the predicate the
// total is counted with. The count uses the bare predicate, never the page.
func videoListQuery(filter repository.VideoFilter, q dto.ListQuery) (*aggregation.Builder, bson.D) {
	match := aggregation.VideoFilter(filter.Owner, filter.PublishedOnly, filter.Search)
	sort := aggregation.ResolveSort(q.SortBy, q.SortType, aggregation.VideoSortFields...)
	return aggregation.VideoList(match, sort, q.Page, q.Limit), match
}
