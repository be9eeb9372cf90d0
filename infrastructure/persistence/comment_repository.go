package persistence

import (
	"context"
	"time"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/aggregation"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const commentNotFound = "Comment not found"

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *MongoDb) repository.IComment {
	return &CommentRepository{coll: db.Collection(aggregation.CollComments)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	if comment.ID.IsZero() {
		comment.ID = bson.NewObjectID()
	}
	comment.CreatedAt, comment.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, comment)
	return mapError(err, "insert comment", commentNotFound)
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&comment); err != nil {
		return nil, mapError(err, "find comment", commentNotFound)
	}
	return &comment, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id bson.ObjectID, content string) (*model.Comment, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment model.Comment
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&comment); err != nil {
		return nil, mapError(err, "update comment", commentNotFound)
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return mapError(err, "delete comment", commentNotFound)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound(commentNotFound)
	}
	return nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID bson.ObjectID, q dto.ListQuery) ([]model.CommentView, int64, error) {
	comments := []model.CommentView{}
	if err := aggregateAll(ctx, r.coll, aggregation.CommentsByVideo(videoID, q.Page, q.Limit), &comments); err != nil {
		return nil, 0, mapError(err, "list comments", commentNotFound)
	}
	total, err := r.coll.CountDocuments(ctx, bson.D{{Key: "video", Value: videoID}})
	if err != nil {
		return nil, 0, mapError(err, "count comments", commentNotFound)
	}
	return comments, total, nil
}
