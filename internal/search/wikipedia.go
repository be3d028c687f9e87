// Copyright (c) 2025 Aham Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// CONFIG
// =============================================================================

// WikipediaConfig configures the Wikipedia client. Zero values fall back
// to defaults.
type WikipediaConfig struct {
	BaseURL   string        // default: https://en.wikipedia.org
	Timeout   time.Duration // default: 10s
	UserAgent string        // default: aham-search/1.0

	// RequestsPerSecond bounds outbound calls. Default: 2.
	RequestsPerSecond float64
}

func (c *WikipediaConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://en.wikipedia.org"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "aham-search/1.0"
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 2
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// WikipediaClient looks up page summaries via the REST API, falling back
// to opensearch title matching when no exact page exists.
type WikipediaClient struct {
	cfg     WikipediaConfig
	http    *http.Client
	limiter *rate.Limiter
}

// NewWikipediaClient creates a client with pooled connections.
func NewWikipediaClient(cfg WikipediaConfig) *WikipediaClient {
	cfg.applyDefaults()
	return &WikipediaClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

type wikiSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Type    string `json:"type"`

	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`

	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Search resolves a query to at most a handful of items: the page summary
// when the title resolves directly, otherwise up to three opensearch
// title matches.
func (c *WikipediaClient) Search(ctx context.Context, query string) (*Result, error) {
	q := CleanQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	title := stripFactualPrefix(q)

	res := &Result{
		Source:    SourceWikipedia,
		Query:     q,
		Timestamp: time.Now(),
	}

	summary, err := c.fetchSummary(ctx, title)
	if err == nil && summary.Extract != "" && summary.Type != "disambiguation" {
		res.Success = true
		res.Results = []Item{{
			Title:     summary.Title,
			Summary:   summary.Extract,
			URL:       summary.ContentURLs.Desktop.Page,
			Thumbnail: summary.Thumbnail.Source,
			Type:      ItemSummary,
		}}
		return res, nil
	}
	if err != nil && IsConnectivityError(err) {
		return nil, err
	}

	items, err := c.openSearch(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		res.Err = fmt.Sprintf("no Wikipedia results for %q", title)
		return res, nil
	}
	res.Success = true
	res.Results = items
	return res, nil
}

func (c *WikipediaClient) fetchSummary(ctx context.Context, title string) (*wikiSummary, error) {
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), url.PathEscape(title))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{
			Type:    ErrorTypeHTTP,
			Source:  SourceWikipedia,
			Message: fmt.Sprintf("summary lookup returned status %d", status),
		}
	}

	var s wikiSummary
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, &Error{Type: ErrorTypeDecode, Source: SourceWikipedia, Message: "invalid summary response", Err: err}
	}
	return &s, nil
}

// openSearch returns up to three title matches. The opensearch response is
// a positional four-element array: [query, titles, descriptions, urls].
func (c *WikipediaClient) openSearch(ctx context.Context, query string) ([]Item, error) {
	u := fmt.Sprintf("%s/w/api.php?action=opensearch&format=json&limit=3&search=%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), url.QueryEscape(query))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{
			Type:    ErrorTypeHTTP,
			Source:  SourceWikipedia,
			Message: fmt.Sprintf("opensearch returned status %d", status),
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) < 4 {
		return nil, &Error{Type: ErrorTypeDecode, Source: SourceWikipedia, Message: "invalid opensearch response", Err: err}
	}
	var titles, descriptions, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, &Error{Type: ErrorTypeDecode, Source: SourceWikipedia, Message: "invalid opensearch titles", Err: err}
	}
	_ = json.Unmarshal(raw[2], &descriptions)
	_ = json.Unmarshal(raw[3], &urls)

	var items []Item
	for i, t := range titles {
		item := Item{Title: t, Type: ItemSearchResult}
		if i < len(descriptions) {
			item.Summary = descriptions[i]
		}
		if i < len(urls) {
			item.URL = urls[i]
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *WikipediaClient) get(ctx context.Context, u string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceWikipedia, Message: "rate limit wait aborted", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeUnknown, Source: SourceWikipedia, Message: "building request", Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceWikipedia, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceWikipedia, Message: "reading response", Err: err}
	}
	return body, resp.StatusCode, nil
}
