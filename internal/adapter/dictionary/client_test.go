package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

func testDictClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.Config{
		DictionaryBaseURL: srv.URL,
		DictionaryLang:    "en",
		DictionaryTimeout: 2 * time.Second,
	})
}

func TestLookup_Found(t *testing.T) {
	c := testDictClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/en/river", r.URL.Path)
		_, _ = w.Write([]byte(`[{"word":"river"}]`))
	})
	found, err := c.Lookup(context.Background(), "river")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLookup_NotFoundIsDefinitive(t *testing.T) {
	c := testDictClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	})
	found, err := c.Lookup(context.Background(), "blorptag")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookup_ServerErrorIsError(t *testing.T) {
	c := testDictClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	})
	_, err := c.Lookup(context.Background(), "river")
	require.Error(t, err)
}

type countingDict struct {
	calls int
	found bool
	err   error
}

func (c *countingDict) Lookup(_ domain.Context, _ string) (bool, error) {
	c.calls++
	return c.found, c.err
}

func (c *countingDict) Source() string { return "free" }

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCachedLookup_CachesDefinitiveVerdicts(t *testing.T) {
	inner := &countingDict{found: true}
	c := NewCached(inner, testRedis(t), time.Hour)
	ctx := context.Background()

	found, err := c.Lookup(ctx, "river")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = c.Lookup(ctx, "river")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedLookup_DoesNotCacheErrors(t *testing.T) {
	inner := &countingDict{err: errors.New("boom")}
	c := NewCached(inner, testRedis(t), time.Hour)
	ctx := context.Background()

	_, err := c.Lookup(ctx, "river")
	require.Error(t, err)
	_, err = c.Lookup(ctx, "river")
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedLookup_CachesNegatives(t *testing.T) {
	inner := &countingDict{found: false}
	c := NewCached(inner, testRedis(t), time.Hour)
	ctx := context.Background()

	found, err := c.Lookup(ctx, "blorptag")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Lookup(ctx, "blorptag")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, inner.calls)
}
