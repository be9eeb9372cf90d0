package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/domain/model"
)

func TestEncodeEvent(t *testing.T) {
	event := model.NewEvent(model.EventVideoDeleted, map[string]interface{}{"videoId": "abc"})

	msg, err := encodeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, model.EventVideoDeleted, msg.Attributes["type"])

	var decoded model.Event
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.Equal(t, "abc", decoded.Payload["videoId"])
}

func TestNewPubSub_RequiresProject(t *testing.T) {
	_, err := NewPubSub(context.Background(), "")
	assert.Error(t, err)
}
