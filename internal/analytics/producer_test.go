package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalytics_DisabledWithoutBrokers(t *testing.T) {
	a := NewAnalytics("", "game.analytics")
	assert.Nil(t, a)

	// a disabled producer swallows events
	a.Emit("game.start", map[string]any{"gameId": "x"})
	assert.NoError(t, a.Close())
}

func TestEncodeEvent(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	payload := map[string]any{"gameId": "abc", "moves": 12}

	msg, err := encodeEvent("game.end", payload, ts)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), msg.Key)
	assert.NotContains(t, payload, "event", "payload is not modified")

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "game.end", body["event"])
	assert.Equal(t, "abc", body["gameId"])
	assert.Equal(t, float64(12), body["moves"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["ts"])
}
