package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Tweet is a short text post owned by a user.
type Tweet struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner     bson.ObjectID `bson:"owner" json:"owner"`
	Content   string        `bson:"content" json:"content"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tweet) OwnerID() bson.ObjectID { return t.Owner }

type TweetView struct {
	ID         bson.ObjectID `bson:"_id" json:"_id"`
	Content    string        `bson:"content" json:"content"`
	Owner      *UserSummary  `bson:"owner,omitempty" json:"owner,omitempty"`
	LikesCount int64         `bson:"likesCount" json:"likesCount"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}
