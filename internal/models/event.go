package models

import "time"

// EventType identifies one of the recognized GitHub activity kinds.
// The set is closed: anything else the feed reports is dropped at the
// ingestion boundary and never enters the data model.
type EventType string

const (
	TypeWatch       EventType = "WatchEvent"
	TypePullRequest EventType = "PullRequestEvent"
	TypeIssues      EventType = "IssuesEvent"
)

// KnownTypes returns the recognized event kinds in a stable order.
func KnownTypes() []EventType {
	return []EventType{TypeWatch, TypePullRequest, TypeIssues}
}

// Known reports whether t is one of the recognized kinds.
func (t EventType) Known() bool {
	switch t {
	case TypeWatch, TypePullRequest, TypeIssues:
		return true
	}
	return false
}

// Event is one immutable record of repository activity.
type Event struct {
	ID        string
	Type      EventType
	Repo      string
	CreatedAt time.Time
}

// FeedEvent mirrors one element of the GitHub /events response payload.
// Only the fields the service consumes are declared.
type FeedEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

// Event converts the raw feed entry into a typed Event. It returns
// ok=false for unrecognized kinds, which callers must skip.
func (f FeedEvent) Event() (Event, bool) {
	t := EventType(f.Type)
	if !t.Known() {
		return Event{}, false
	}
	return Event{
		ID:        f.ID,
		Type:      t,
		Repo:      f.Repo.Name,
		CreatedAt: f.CreatedAt.UTC(),
	}, true
}

// AveragePRResponse is returned by GET /metrics/average-pr-time.
// AverageSeconds is null when fewer than two PR events were found;
// Message then explains how many were found.
type AveragePRResponse struct {
	AverageSeconds *float64 `json:"average_seconds"`
	Message        string   `json:"message,omitempty"`
}
