// Package source implements an API backed by RSS feeds: every user is a feed and its items are the user's posts.
package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/go-shiori/go-readability"
	"github.com/samber/lo"

	"github.com/0x0BSoD/featfeed/internal/network"
)

// IDPlaceholder is replaced by the user id in RSSAPI.URLTemplate.
const IDPlaceholder = "{id}"

// DefaultCacheTTL keeps a parsed feed long enough for GetUser and GetPosts
// of one snapshot to see the same feed version.
const DefaultCacheTTL = 30 * time.Second

type RSSAPI struct {
	URLTemplate string
	Insecure    bool
	Timeout     time.Duration
	// CacheTTL of zero or less disables caching.
	CacheTTL time.Duration

	mu    sync.Mutex
	cache map[int64]cachedFeed
	now   func() time.Time
}

type cachedFeed struct {
	feed      *rss.Feed
	fetchedAt time.Time
}

func NewRSSAPI(urlTemplate string, insecure bool) *RSSAPI {
	return &RSSAPI{
		URLTemplate: urlTemplate,
		Insecure:    insecure,
		Timeout:     30 * time.Second,
		CacheTTL:    DefaultCacheTTL,
		cache:       map[int64]cachedFeed{},
		now:         time.Now,
	}
}

func (s *RSSAPI) GetUser(ctx context.Context, id int64) (network.APIUser, error) {
	feed, err := s.loadFeed(ctx, id)
	if err != nil {
		return network.APIUser{}, err
	}

	name := strings.TrimSpace(feed.Title)
	if name == "" {
		name = fmt.Sprintf("Feed %d", id)
	}

	return network.APIUser{ID: id, Name: name}, nil
}

func (s *RSSAPI) GetPosts(ctx context.Context, userID int64, limit int) ([]network.APIPost, error) {
	feed, err := s.loadFeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if limit < len(items) {
		items = items[:max(limit, 0)]
	}

	return lo.Map(items, func(item *rss.Item, i int) network.APIPost {
		return network.APIPost{
			ID:     int64(i + 1),
			UserID: userID,
			Title:  strings.TrimSpace(item.Title),
			Body:   itemText(item),
		}
	}), nil
}

// FeedURL returns the feed address of the given user.
func (s *RSSAPI) FeedURL(id int64) string {
	return strings.ReplaceAll(s.URLTemplate, IDPlaceholder, strconv.FormatInt(id, 10))
}

// itemText returns the plain text of the richest available item body.
// Content is preferred over Summary; markup is stripped with readability and
// the raw text is kept when extraction yields nothing.
func itemText(item *rss.Item) string {
	raw := strings.TrimSpace(item.Content)
	if raw == "" {
		raw = strings.TrimSpace(item.Summary)
	}
	if raw == "" {
		return ""
	}

	doc, err := readability.FromReader(strings.NewReader(raw), nil)
	if err != nil {
		return raw
	}
	if text := strings.TrimSpace(doc.TextContent); text != "" {
		return text
	}
	return raw
}

// loadFeed returns the cached feed of the user while it is fresh and fetches
// it otherwise. Failed fetches are not cached.
func (s *RSSAPI) loadFeed(ctx context.Context, id int64) (*rss.Feed, error) {
	if id < 0 {
		return nil, fmt.Errorf("feed %d: %w", id, network.ErrNotFound)
	}

	if s.CacheTTL <= 0 {
		return s.fetchFeed(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, ok := s.cache[id]; ok && now.Sub(c.fetchedAt) < s.CacheTTL {
		return c.feed, nil
	}

	feed, err := s.fetchFeed(ctx, id)
	if err != nil {
		return nil, err
	}

	for key, c := range s.cache {
		if now.Sub(c.fetchedAt) >= s.CacheTTL {
			delete(s.cache, key)
		}
	}
	s.cache[id] = cachedFeed{feed: feed, fetchedAt: now}

	return feed, nil
}

func (s *RSSAPI) fetchFeed(ctx context.Context, id int64) (*rss.Feed, error) {
	transport := http.DefaultTransport
	if s.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
	client := &http.Client{Transport: transport, Timeout: s.Timeout}

	url := s.FeedURL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("feed %s: %w", url, network.ErrNotFound)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", url, err)
	}

	feed, err := rss.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	return feed, nil
}
