package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Subscription struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Subscriber bson.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    bson.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// SubscriptionView pairs a subscription with the user on the other side.
type SubscriptionView struct {
	ID           bson.ObjectID `bson:"_id" json:"_id"`
	SubscribedAt time.Time     `bson:"createdAt" json:"subscribedAt"`
	User         *UserSummary  `bson:"user,omitempty" json:"user,omitempty"`
}
