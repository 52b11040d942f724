package metrics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ghpulse/ghpulse/internal/models"
	"github.com/ghpulse/ghpulse/internal/store"
)

// ErrInvalidOffset is returned when a caller supplies a non-positive
// offset_minutes. The computation is not attempted.
var ErrInvalidOffset = errors.New("offset_minutes must be a positive integer")

// Engine computes the analytical views over a store snapshot. All
// operations are read-only; timestamp arithmetic is done in UTC.
type Engine struct {
	store *store.MemoryStore
	now   func() time.Time
}

// NewEngine builds an engine over st.
func NewEngine(st *store.MemoryStore) *Engine {
	return &Engine{store: st, now: time.Now}
}

// AveragePRInterval returns the mean time in seconds between
// consecutive PullRequestEvents for repo. With fewer than two matching
// events the value is nil and the message explains how many were found.
//
// The feed does not guarantee chronological delivery, so timestamps
// are sorted before differencing; ties keep arrival order.
func (e *Engine) AveragePRInterval(repo string) (*float64, string) {
	var times []time.Time
	for _, ev := range e.store.Snapshot() {
		if ev.Type == models.TypePullRequest && ev.Repo == repo {
			times = append(times, ev.CreatedAt)
		}
	}

	n := len(times)
	if n < 2 {
		return nil, fmt.Sprintf("Only %d PR event(s) found. At least 2 are required.", n)
	}

	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})

	// Mean of consecutive gaps telescopes to (t_n - t_1) / (n - 1).
	avg := times[n-1].Sub(times[0]).Seconds() / float64(n-1)
	return &avg, ""
}

// EventCounts counts events per kind within the last offsetMinutes
// minutes, boundary inclusive. Every recognized kind is present in the
// result, zero counts included.
func (e *Engine) EventCounts(offsetMinutes int) (map[models.EventType]int, error) {
	if offsetMinutes <= 0 {
		return nil, ErrInvalidOffset
	}

	cutoff := e.now().UTC().Add(-time.Duration(offsetMinutes) * time.Minute)

	counts := make(map[models.EventType]int, 3)
	for _, t := range models.KnownTypes() {
		counts[t] = 0
	}
	for _, ev := range e.store.Snapshot() {
		if !ev.CreatedAt.Before(cutoff) {
			counts[ev.Type]++
		}
	}
	return counts, nil
}

// PRCountsByRepo counts PullRequestEvents per repository. Only
// repositories with at least one PR event appear.
func (e *Engine) PRCountsByRepo() map[string]int {
	counts := make(map[string]int)
	for _, ev := range e.store.Snapshot() {
		if ev.Type == models.TypePullRequest {
			counts[ev.Repo]++
		}
	}
	return counts
}

// VisualizationData is the input to the chart renderer. It is the same
// computation as EventCounts.
func (e *Engine) VisualizationData(offsetMinutes int) (map[models.EventType]int, error) {
	return e.EventCounts(offsetMinutes)
}
