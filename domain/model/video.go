package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MaxVideoDurationSeconds is the longest video accepted at publish time.
const MaxVideoDurationSeconds = 600

type Video struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner       bson.ObjectID `bson:"owner" json:"owner"`
	VideoFile   string        `bson:"videoFile" json:"videoFile"`
	Thumbnail   string        `bson:"thumbnail" json:"thumbnail"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Duration    int           `bson:"duration" json:"duration"`
	Views       int64         `bson:"views" json:"views"`
	IsPublished bool          `bson:"isPublished" json:"isPublished"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func (v *Video) OwnerID() bson.ObjectID { return v.Owner }

// VideoView is a video shaped for reads, with its owner collapsed to a
// summary. OwnerDetails is nil when the owner no longer exists.
type VideoView struct {
	ID           bson.ObjectID `bson:"_id" json:"_id"`
	Owner        bson.ObjectID `bson:"owner" json:"owner"`
	OwnerDetails *UserSummary  `bson:"ownerDetails,omitempty" json:"ownerDetails,omitempty"`
	VideoFile    string        `bson:"videoFile" json:"videoFile"`
	Thumbnail    string        `bson:"thumbnail" json:"thumbnail"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Duration     int           `bson:"duration" json:"duration"`
	Views        int64         `bson:"views" json:"views"`
	IsPublished  bool          `bson:"isPublished" json:"isPublished"`
	LikesCount   int64         `bson:"likesCount" json:"likesCount"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
