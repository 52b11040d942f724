package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedEvent_Event(t *testing.T) {
	payload := `{
		"id": "44518919500",
		"type": "PullRequestEvent",
		"repo": {"id": 42, "name": "octocat/hello-world"},
		"created_at": "2025-06-01T12:00:00Z",
		"payload": {"action": "opened"}
	}`

	var f FeedEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &f))

	ev, ok := f.Event()
	require.True(t, ok)
	assert.Equal(t, "44518919500", ev.ID)
	assert.Equal(t, TypePullRequest, ev.Type)
	assert.Equal(t, "octocat/hello-world", ev.Repo)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), ev.CreatedAt)
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())
}

func TestFeedEvent_UnrecognizedKindRejected(t *testing.T) {
	for _, kind := range []string{"ForkEvent", "PushEvent", "ReleaseEvent", ""} {
		f := FeedEvent{ID: "1", Type: kind}
		_, ok := f.Event()
		assert.Falsef(t, ok, "kind %q must be rejected", kind)
	}
}

func TestEventType_Known(t *testing.T) {
	for _, kind := range KnownTypes() {
		assert.True(t, kind.Known())
	}
	assert.False(t, EventType("GollumEvent").Known())
}

func TestAveragePRResponse_NullSerialization(t *testing.T) {
	b, err := json.Marshal(AveragePRResponse{Message: "Only 0 PR event(s) found. At least 2 are required."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"average_seconds": null, "message": "Only 0 PR event(s) found. At least 2 are required."}`, string(b))

	v := 150.0
	b, err = json.Marshal(AveragePRResponse{AverageSeconds: &v})
	require.NoError(t, err)
	assert.JSONEq(t, `{"average_seconds": 150}`, string(b))
}
