package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Ownable is any entity whose mutations are restricted to its owner.
type Ownable interface {
	OwnerID() bson.ObjectID
}

var (
	_ Ownable = (*Video)(nil)
	_ Ownable = (*Comment)(nil)
	_ Ownable = (*Tweet)(nil)
)
