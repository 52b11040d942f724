package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// INTEGRATION TEST SUITE
//
// These tests validate the service end-to-end:
//
//   GitHub feed → Poller → Store → MetricsEngine → HTTP API → Client
//
// The service must already be running and polling (for example via
// `go run ./cmd/api`), so the suite is skipped unless BASE_URL is set:
//
//   BASE_URL    e.g. http://localhost:8080
//
// Ingested data depends on the live feed, so assertions target the
// API contract (shapes, validation, content types) rather than counts.
////////////////////////////////////////////////////////////////////////////////

func baseURL(t *testing.T) string {
	t.Helper()
	v := os.Getenv("BASE_URL")
	if v == "" {
		t.Skip("BASE_URL not set; skipping integration suite")
	}
	return v
}

// httpGet performs a GET request against the running service.
func httpGet(t *testing.T, path string) (int, http.Header, []byte) {
	t.Helper()

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Get(baseURL(t) + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header, b
}

////////////////////////////////////////////////////////////////////////////////
// HEALTH
////////////////////////////////////////////////////////////////////////////////

func TestHealth_ReturnsOK(t *testing.T) {
	s, _, b := httpGet(t, "/health")
	if s != http.StatusOK {
		t.Fatalf("health expected 200 got %d", s)
	}

	var body struct {
		Status string `json:"status"`
		Events int    `json:"events"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("invalid health JSON: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("health status %q", body.Status)
	}
}

////////////////////////////////////////////////////////////////////////////////
// METRICS API CONTRACT
////////////////////////////////////////////////////////////////////////////////

// Event counts must always contain exactly the three recognized kinds.
func TestEventCounts_ContainsAllKinds(t *testing.T) {
	s, _, b := httpGet(t, "/metrics/event-counts?offset_minutes=10")
	if s != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", s, b)
	}

	var counts map[string]int
	if err := json.Unmarshal(b, &counts); err != nil {
		t.Fatalf("invalid counts JSON: %v", err)
	}
	for _, kind := range []string{"WatchEvent", "PullRequestEvent", "IssuesEvent"} {
		if _, ok := counts[kind]; !ok {
			t.Fatalf("missing kind %s in %v", kind, counts)
		}
	}
	if len(counts) != 3 {
		t.Fatalf("expected exactly 3 kinds, got %v", counts)
	}
}

// Non-positive and non-integer offsets are client errors.
func TestEventCounts_RejectsInvalidOffset(t *testing.T) {
	for _, q := range []string{"0", "-5", "abc"} {
		s, _, _ := httpGet(t, "/metrics/event-counts?offset_minutes="+url.QueryEscape(q))
		if s != http.StatusBadRequest {
			t.Fatalf("offset %q expected 400 got %d", q, s)
		}
	}
}

// A repo that has never appeared yields the documented message shape.
func TestAveragePRTime_UnknownRepoShape(t *testing.T) {
	repo := fmt.Sprintf("no-such-owner/no-such-repo-%d", time.Now().UnixNano())
	s, _, b := httpGet(t, "/metrics/average-pr-time?repo_name="+url.QueryEscape(repo))
	if s != http.StatusOK {
		t.Fatalf("expected 200 got %d", s)
	}

	var resp struct {
		AverageSeconds *float64 `json:"average_seconds"`
		Message        string   `json:"message"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.AverageSeconds != nil {
		t.Fatalf("expected null average_seconds, got %v", *resp.AverageSeconds)
	}
	if resp.Message != "Only 0 PR event(s) found. At least 2 are required." {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestPRCounts_ReturnsMapping(t *testing.T) {
	s, _, b := httpGet(t, "/metrics/pr-counts")
	if s != http.StatusOK {
		t.Fatalf("expected 200 got %d", s)
	}

	var counts map[string]int
	if err := json.Unmarshal(b, &counts); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for repo, n := range counts {
		if n < 1 {
			t.Fatalf("repo %s listed with %d PR events; zero-count repos must be omitted", repo, n)
		}
	}
}

func TestVisualization_ReturnsPNG(t *testing.T) {
	s, h, b := httpGet(t, "/metrics/visualization?offset_minutes=60")
	if s != http.StatusOK {
		t.Fatalf("expected 200 got %d", s)
	}
	if ct := h.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png got %s", ct)
	}
	if len(b) < 8 || b[0] != 0x89 || string(b[1:4]) != "PNG" {
		t.Fatal("body is not a PNG")
	}
}
