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

	"github.com/ahamlabs/aham/internal/util"
)

// maxRelatedTopics bounds how many related-topic entries are kept from an
// instant answer.
const maxRelatedTopics = 3

// =============================================================================
// CONFIG
// =============================================================================

// DuckDuckGoConfig configures the instant-answer client. Zero values fall
// back to defaults.
type DuckDuckGoConfig struct {
	BaseURL   string        // default: https://api.duckduckgo.com
	Timeout   time.Duration // default: 10s
	UserAgent string        // default: aham-search/1.0

	// RequestsPerSecond bounds outbound calls. Default: 2.
	RequestsPerSecond float64
}

func (c *DuckDuckGoConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.duckduckgo.com"
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

// DuckDuckGoClient queries the instant-answer API. Network failures do not
// surface as errors: the client degrades to a synthetic result carrying a
// link to the web search, so the caller always has something to display.
type DuckDuckGoClient struct {
	cfg     DuckDuckGoConfig
	http    *http.Client
	limiter *rate.Limiter
}

// NewDuckDuckGoClient creates a client with pooled connections.
func NewDuckDuckGoClient(cfg DuckDuckGoConfig) *DuckDuckGoClient {
	cfg.applyDefaults()
	return &DuckDuckGoClient{
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

type ddgResponse struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	Image         string `json:"Image"`
	Definition    string `json:"Definition"`
	DefinitionURL string `json:"DefinitionURL"`

	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

type ddgTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`

	Icon struct {
		URL string `json:"URL"`
	} `json:"Icon"`
}

// Search runs an instant-answer lookup. A connectivity failure returns a
// degraded Result (Success false, one fallback item) with a nil error; a
// backend error status returns a typed error.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) (*Result, error) {
	q := CleanQuery(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	res := &Result{
		Source:    SourceDuckDuckGo,
		Query:     q,
		Timestamp: time.Now(),
	}

	u := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), url.QueryEscape(q))

	body, status, err := c.get(ctx, u)
	if err != nil {
		if IsConnectivityError(err) {
			res.Err = err.Error()
			res.Results = []Item{degradedItem(SourceDuckDuckGo, q)}
			return res, nil
		}
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{
			Type:    ErrorTypeHTTP,
			Source:  SourceDuckDuckGo,
			Message: fmt.Sprintf("instant answer returned status %d", status),
		}
	}

	var dr ddgResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, &Error{Type: ErrorTypeDecode, Source: SourceDuckDuckGo, Message: "invalid instant answer response", Err: err}
	}

	res.Results = collectItems(&dr)
	if len(res.Results) == 0 {
		res.Err = fmt.Sprintf("no instant answer for %q", q)
		return res, nil
	}
	res.Success = true
	return res, nil
}

// collectItems flattens an instant answer into display items: the
// abstract, then the definition, then up to three related topics.
func collectItems(dr *ddgResponse) []Item {
	var items []Item

	if dr.AbstractText != "" {
		title := dr.Heading
		if title == "" {
			title = util.FirstLine(dr.AbstractText)
		}
		items = append(items, Item{
			Title:     title,
			Summary:   dr.AbstractText,
			URL:       dr.AbstractURL,
			Thumbnail: dr.Image,
			Type:      ItemInstantAnswer,
		})
	}

	if dr.Definition != "" {
		items = append(items, Item{
			Title:   "Definition",
			Summary: dr.Definition,
			URL:     dr.DefinitionURL,
			Type:    ItemDefinition,
		})
	}

	for _, t := range dr.RelatedTopics {
		if t.Text == "" {
			continue
		}
		items = append(items, Item{
			Title:     topicTitle(t.Text),
			Summary:   t.Text,
			URL:       t.FirstURL,
			Thumbnail: t.Icon.URL,
			Type:      ItemRelatedTopic,
		})
		if countType(items, ItemRelatedTopic) >= maxRelatedTopics {
			break
		}
	}
	return items
}

// topicTitle takes the leading clause of a related-topic blurb.
func topicTitle(text string) string {
	if i := strings.Index(text, " - "); i > 0 {
		return text[:i]
	}
	return util.TruncateRunes(text, 60)
}

func countType(items []Item, kind string) int {
	n := 0
	for _, it := range items {
		if it.Type == kind {
			n++
		}
	}
	return n
}

func (c *DuckDuckGoClient) get(ctx context.Context, u string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceDuckDuckGo, Message: "rate limit wait aborted", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeUnknown, Source: SourceDuckDuckGo, Message: "building request", Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceDuckDuckGo, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, &Error{Type: ErrorTypeConnectivity, Source: SourceDuckDuckGo, Message: "reading response", Err: err}
	}
	return body, resp.StatusCode, nil
}
