// Package stats is the HTTP client for the view-statistics collaborator.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventboard/internal/domain"
)

// timeLayout is the wire format the stats service expects for window bounds.
const timeLayout = "2006-01-02 15:04:05"

type httpClient struct {
	baseURL string
	app     string
	client  *http.Client
}

// NewHTTPClient returns a StatsClient talking to the stats service at
// baseURL. app identifies this service in recorded hits.
func NewHTTPClient(baseURL, app string, client *http.Client) domain.StatsClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		client:  client,
	}
}

type hitBody struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type statsEntry struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

func (c *httpClient) Hit(ctx context.Context, uri, ip string) error {
	body, err := json.Marshal(hitBody{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: time.Now().Format(timeLayout),
	})
	if err != nil {
		return fmt.Errorf("encode hit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create hit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post hit: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("stats service returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *httpClient) Views(ctx context.Context, start, end time.Time, eventIDs []int64, unique bool) (map[int64]int64, error) {
	params := url.Values{}
	params.Set("start", start.Format(timeLayout))
	params.Set("end", end.Format(timeLayout))
	params.Set("unique", strconv.FormatBool(unique))
	for _, id := range eventIDs {
		params.Add("uris", eventURI(id))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create stats request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats service returned status %d", resp.StatusCode)
	}

	var entries []statsEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	views := make(map[int64]int64, len(entries))
	for _, entry := range entries {
		id, ok := parseEventURI(entry.URI)
		if !ok {
			continue
		}
		views[id] += entry.Hits
	}
	return views, nil
}

func eventURI(id int64) string {
	return "/events/" + strconv.FormatInt(id, 10)
}

func parseEventURI(uri string) (int64, bool) {
	rest, ok := strings.CutPrefix(uri, "/events/")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Noop is a StatsClient that records nothing and reports zero views. Used
// when no stats service is configured.
type Noop struct{}

func (Noop) Hit(ctx context.Context, uri, ip string) error {
	return nil
}

func (Noop) Views(ctx context.Context, start, end time.Time, eventIDs []int64, unique bool) (map[int64]int64, error) {
	return map[int64]int64{}, nil
}
