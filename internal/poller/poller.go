package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ghpulse/ghpulse/internal/models"
	"github.com/ghpulse/ghpulse/internal/observability"
	"github.com/ghpulse/ghpulse/internal/store"
)

// Fetcher retrieves one poll's worth of feed entries plus the feed's
// poll-interval hint (zero when the feed did not advise one).
type Fetcher interface {
	ListEvents(ctx context.Context) ([]models.FeedEvent, time.Duration, error)
}

// Poller keeps the event store populated from the external feed. It is
// the store's only writer. Fetch failures are contained here: the loop
// backs off and retries, and ingestion simply lags.
type Poller struct {
	fetcher  Fetcher
	store    *store.MemoryStore
	interval time.Duration
	metrics  *observability.Metrics

	// sleep is swapped out by tests to observe wait durations.
	sleep func(ctx context.Context, d time.Duration)
}

// New builds a poller. interval is the default wait between polls,
// used whenever the feed does not send a hint.
func New(f Fetcher, st *store.MemoryStore, interval time.Duration, m *observability.Metrics) *Poller {
	return &Poller{
		fetcher:  f,
		store:    st,
		interval: interval,
		metrics:  m,
		sleep:    sleepCtx,
	}
}

// Run executes the poll loop until ctx is cancelled. Each cycle
// fetches the feed, appends the recognized new events, and waits for
// the advised interval; on failure it waits out an exponential backoff
// that starts at the normal interval, then retries.
func (p *Poller) Run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.interval
	bo.RandomizationFactor = 0
	bo.MaxInterval = 10 * p.interval
	bo.MaxElapsedTime = 0 // retry forever
	bo.Reset()            // pick up the interval overrides

	for ctx.Err() == nil {
		slog.Info("polling events feed")

		page, hint, err := p.fetcher.ListEvents(ctx)
		if err != nil {
			wait := bo.NextBackOff()
			slog.Error("poll failed", "error", err, "retry_in", wait)
			p.metrics.PollsTotal.WithLabelValues("error").Inc()
			p.sleep(ctx, wait)
			continue
		}
		bo.Reset()

		ingested := p.ingest(page)
		slog.Info("poll complete", "fetched", len(page), "ingested", ingested)
		p.metrics.PollsTotal.WithLabelValues("success").Inc()

		p.sleep(ctx, p.waitFor(hint))
	}
}

// ingest appends recognized, unseen events in page order and returns
// how many were new.
func (p *Poller) ingest(page []models.FeedEvent) int {
	ingested := 0
	for _, raw := range page {
		ev, ok := raw.Event()
		if !ok {
			p.metrics.EventsSkippedTotal.Inc()
			continue
		}
		if p.store.TryAppend(ev) {
			ingested++
			p.metrics.EventsIngestedTotal.WithLabelValues(string(ev.Type)).Inc()
		} else {
			p.metrics.EventsDuplicateTotal.Inc()
		}
	}
	p.metrics.StoreEvents.Set(float64(p.store.Count()))
	return ingested
}

// waitFor returns the delay before the next poll: the feed's hint when
// it sent one, otherwise the configured default. The hint is a lower
// bound on poll spacing, so it is honored even when shorter than the
// default.
func (p *Poller) waitFor(hint time.Duration) time.Duration {
	if hint > 0 {
		return hint
	}
	return p.interval
}

// sleepCtx waits for d or until ctx is cancelled, whichever is first.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
