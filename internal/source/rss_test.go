package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/featfeed/internal/network"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Ann's notes</title>
    <link>http://example.com/</link>
    <description>test</description>
    <item>
      <title>First</title>
      <link>http://example.com/1</link>
      <description>Plain summary</description>
    </item>
    <item>
      <title> Second </title>
      <link>http://example.com/2</link>
    </item>
    <item>
      <title>Third</title>
      <link>http://example.com/3</link>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feeds/5.xml":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(testFeed))
		case "/feeds/6.xml":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestRSSAPI_FeedURL(t *testing.T) {
	api := NewRSSAPI("http://host/feeds/{id}.xml", false)
	assert.Equal(t, "http://host/feeds/42.xml", api.FeedURL(42))
}

func TestRSSAPI_GetUser(t *testing.T) {
	srv := newFeedServer(t)
	api := NewRSSAPI(srv.URL+"/feeds/{id}.xml", false)

	user, err := api.GetUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, network.APIUser{ID: 5, Name: "Ann's notes"}, user)

	_, err = api.GetUser(context.Background(), 9)
	assert.ErrorIs(t, err, network.ErrNotFound)

	_, err = api.GetUser(context.Background(), -1)
	assert.ErrorIs(t, err, network.ErrNotFound)

	_, err = api.GetUser(context.Background(), 6)
	require.Error(t, err)
	assert.NotErrorIs(t, err, network.ErrNotFound)
}

func TestRSSAPI_GetPosts(t *testing.T) {
	srv := newFeedServer(t)
	api := NewRSSAPI(srv.URL+"/feeds/{id}.xml", false)

	posts, err := api.GetPosts(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(5), posts[0].UserID)
	assert.Equal(t, "First", posts[0].Title)
	assert.Contains(t, posts[0].Body, "Plain summary")
	assert.Equal(t, "Second", posts[1].Title)
	assert.Empty(t, posts[1].Body)

	posts, err = api.GetPosts(context.Background(), 5, 20)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestRSSAPI_Cache(t *testing.T) {
	var (
		hits  atomic.Int32
		title atomic.Value
	)
	title.Store("Ann's notes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(strings.Replace(testFeed, "Ann's notes", title.Load().(string), 1)))
	}))
	t.Cleanup(srv.Close)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	api := NewRSSAPI(srv.URL+"/feeds/{id}.xml", false)
	api.now = func() time.Time { return now }

	ctx := context.Background()

	user, err := api.GetUser(ctx, 5)
	require.NoError(t, err)
	title.Store("Renamed")
	posts, err := api.GetPosts(ctx, 5, 20)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "Ann's notes", user.Name)
	assert.Len(t, posts, 3)

	_, err = api.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	now = now.Add(DefaultCacheTTL)
	user, err = api.GetUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, "Renamed", user.Name)
}

func TestRSSAPI_CacheDisabled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testFeed))
	}))
	t.Cleanup(srv.Close)

	api := NewRSSAPI(srv.URL+"/feeds/{id}.xml", false)
	api.CacheTTL = 0

	_, err := api.GetUser(context.Background(), 5)
	require.NoError(t, err)
	_, err = api.GetPosts(context.Background(), 5, 1)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestRSSAPI_CacheSkipsFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(testFeed))
	}))
	t.Cleanup(srv.Close)

	api := NewRSSAPI(srv.URL+"/feeds/{id}.xml", false)

	_, err := api.GetUser(context.Background(), 5)
	require.Error(t, err)

	user, err := api.GetUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ann's notes", user.Name)
	assert.Equal(t, int32(2), hits.Load())
}
