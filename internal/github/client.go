package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghpulse/ghpulse/internal/models"
)

const (
	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "2022-11-28"
	userAgent        = "ghpulse/1.0"
)

// Client fetches pages from the GitHub public events feed.
type Client struct {
	baseURL string
	token   string
	perPage int
	http    *http.Client
}

// NewClient builds a feed client. token may be empty; it only affects
// GitHub's rate limiting, not correctness. timeout bounds each HTTP
// attempt.
func NewClient(baseURL, token string, perPage int, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		perPage: perPage,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListEvents fetches the events feed, following Link rel="next"
// pagination, and returns all entries in page order together with the
// feed's X-Poll-Interval hint (zero when the feed did not send one).
//
// Any network error, non-2xx status, or undecodable payload fails the
// whole poll; the caller retries with backoff and dedup makes the
// re-fetch harmless.
func (c *Client) ListEvents(ctx context.Context) ([]models.FeedEvent, time.Duration, error) {
	var (
		events []models.FeedEvent
		hint   time.Duration
	)

	url := fmt.Sprintf("%s/events?per_page=%d", c.baseURL, c.perPage)
	for url != "" {
		slog.Debug("fetching events page", "url", url)

		page, next, pageHint, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, 0, err
		}
		if pageHint > 0 {
			hint = pageHint
		}
		events = append(events, page...)
		url = next
	}

	return events, hint, nil
}

// fetchPage retrieves a single page and returns its entries, the URL of
// the next page ("" when this is the last one), and the poll hint.
func (c *Client) fetchPage(ctx context.Context, url string) ([]models.FeedEvent, string, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", 0, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", 0, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()

	var hint time.Duration
	if v := resp.Header.Get("X-Poll-Interval"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			hint = time.Duration(secs) * time.Second
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", hint, fmt.Errorf("fetch events: %s returned %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page []models.FeedEvent
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", hint, fmt.Errorf("decode events page: %w", err)
	}

	return page, nextLink(resp.Header.Get("Link")), hint, nil
}

// nextLink extracts the rel="next" URL from a Link header, e.g.
//
//	<https://api.github.com/events?page=2>; rel="next", <...>; rel="last"
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(section[0]), "<>")
		for _, attr := range section[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}
