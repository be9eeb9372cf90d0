package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account and, in its publishing capacity, a channel.
type User struct {
	ID           bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username     string          `bson:"username" json:"username"`
	Email        string          `bson:"email" json:"email"`
	Fullname     string          `bson:"fullname" json:"fullname"`
	Avatar       string          `bson:"avatar" json:"avatar"`
	CoverImage   string          `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Password     string          `bson:"password" json:"-"`
	RefreshToken string          `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory []bson.ObjectID `bson:"watchHistory" json:"watchHistory"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the owner shape attached to joined read models.
type UserSummary struct {
	ID       bson.ObjectID `bson:"_id" json:"_id"`
	Username string        `bson:"username" json:"username"`
	Fullname string        `bson:"fullname" json:"fullname"`
	Avatar   string        `bson:"avatar" json:"avatar"`
}

// ChannelProfile is the public view of a user with subscription rollups.
type ChannelProfile struct {
	ID                        bson.ObjectID `bson:"_id" json:"_id"`
	Username                  string        `bson:"username" json:"username"`
	Email                     string        `bson:"email" json:"email"`
	Fullname                  string        `bson:"fullname" json:"fullname"`
	Avatar                    string        `bson:"avatar" json:"avatar"`
	CoverImage                string        `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	SubscribersCount          int64         `bson:"subscribersCount" json:"subscribersCount"`
	ChannelsSubscribedToCount int64         `bson:"channelsSubscribedToCount" json:"channelsSubscribedToCount"`
	IsSubscribed              bool          `bson:"isSubscribed" json:"isSubscribed"`
}
