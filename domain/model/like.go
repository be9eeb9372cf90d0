package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LikeTarget names the kind of entity a Like points at. Its value is also the
// document field holding the target reference.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// LikeTargets lists every target kind; each has its own uniqueness index.
var LikeTargets = []LikeTarget{LikeTargetVideo, LikeTargetComment, LikeTargetTweet}

func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like references exactly one of Video, Comment or Tweet.
type Like struct {
	ID        bson.ObjectID  `bson:"_id,omitempty" json:"_id"`
	LikedBy   bson.ObjectID  `bson:"likedBy" json:"likedBy"`
	Video     *bson.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	Comment   *bson.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Tweet     *bson.ObjectID `bson:"tweet,omitempty" json:"tweet,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// NewLike builds a Like with only the reference for target set.
func NewLike(likedBy bson.ObjectID, target LikeTarget, targetID bson.ObjectID, now time.Time) (*Like, error) {
	l := &Like{LikedBy: likedBy, CreatedAt: now, UpdatedAt: now}
	id := targetID
	switch target {
	case LikeTargetVideo:
		l.Video = &id
	case LikeTargetComment:
		l.Comment = &id
	case LikeTargetTweet:
		l.Tweet = &id
	default:
		return nil, fmt.Errorf("unknown like target %q", target)
	}
	return l, nil
}

// Target reports which reference is set. ok is false unless exactly one is.
func (l *Like) Target() (LikeTarget, bson.ObjectID, bool) {
	var (
		kind LikeTarget
		id   bson.ObjectID
		n    int
	)
	if l.Video != nil {
		kind, id, n = LikeTargetVideo, *l.Video, n+1
	}
	if l.Comment != nil {
		kind, id, n = LikeTargetComment, *l.Comment, n+1
	}
	if l.Tweet != nil {
		kind, id, n = LikeTargetTweet, *l.Tweet, n+1
	}
	if n != 1 {
		return "", bson.ObjectID{}, false
	}
	return kind, id, true
}

// LikedVideo is one entry of a user's liked-videos listing.
type LikedVideo struct {
	ID      bson.ObjectID `bson:"_id" json:"_id"`
	LikedAt time.Time     `bson:"createdAt" json:"likedAt"`
	Video   VideoView     `bson:"video" json:"video"`
}
