package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Video     bson.ObjectID `bson:"video" json:"video"`
	Owner     bson.ObjectID `bson:"owner" json:"owner"`
	Content   string        `bson:"content" json:"content"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (c *Comment) OwnerID() bson.ObjectID { return c.Owner }

type CommentView struct {
	ID         bson.ObjectID `bson:"_id" json:"_id"`
	Video      bson.ObjectID `bson:"video" json:"video"`
	Content    string        `bson:"content" json:"content"`
	Owner      *UserSummary  `bson:"owner,omitempty" json:"owner,omitempty"`
	LikesCount int64         `bson:"likesCount" json:"likesCount"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}
