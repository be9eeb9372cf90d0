package servicebus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/domain/model"
)

func TestToMessage(t *testing.T) {
	msg, err := toMessage(model.NewEvent(model.EventAssetCleanupFailed, map[string]interface{}{"url": "https://cdn/x.png"}))
	require.NoError(t, err)

	require.NotNil(t, msg.Subject)
	assert.Equal(t, model.EventAssetCleanupFailed, *msg.Subject)
	assert.Equal(t, "application/json", *msg.ContentType)
	assert.Contains(t, string(msg.Body), `"url":"https://cdn/x.png"`)
}

func TestNewServiceBus_RequiresTarget(t *testing.T) {
	_, err := NewServiceBus("", "")
	assert.Error(t, err)
}
