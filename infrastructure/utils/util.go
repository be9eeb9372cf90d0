package utils

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// ParseObjectID reports ok=false for anything that is not a 24 character hex
// ObjectID.
func ParseObjectID(raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}
