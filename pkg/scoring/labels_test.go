package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

type fakeProvider struct {
	options []string
	err     error
	calls   int
}

func (p *fakeProvider) ScoreLabelOptions(_ context.Context) ([]string, error) {
	p.calls++
	return p.options, p.err
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func TestResolve_ExactMatch(t *testing.T) {
	r := NewResolver(&fakeProvider{options: []string{"Hot", "Warm", "Cold"}}, nil)

	assert.Equal(t, "Hot", r.Resolve(context.Background(), "Hot"))
	assert.Equal(t, "Cold", r.Resolve(context.Background(), "Cold"))
}

func TestResolve_DecoratedVocabulary(t *testing.T) {
	// The record store may decorate its options; candidates must still match.
	r := NewResolver(&fakeProvider{options: []string{"🔥 Hot", "Warm", "Cold"}}, nil)

	assert.Equal(t, "🔥 Hot", r.Resolve(context.Background(), "Hot"))
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewResolver(&fakeProvider{options: []string{"🔥 Hot", "Warm", "Cold"}}, nil)

	resolved := r.Resolve(context.Background(), "Hot")
	assert.Equal(t, resolved, r.Resolve(context.Background(), resolved))
}

func TestResolve_StripsQuotes(t *testing.T) {
	r := NewResolver(&fakeProvider{options: []string{"Hot", "Warm", "Cold"}}, nil)

	assert.Equal(t, "Hot", r.Resolve(context.Background(), `"Hot"`))
	assert.Equal(t, "Warm", r.Resolve(context.Background(), "'Warm'"))
}

func TestResolve_NoMatchFallsBackToBucketLiteral(t *testing.T) {
	r := NewResolver(&fakeProvider{options: []string{"Blazing", "Tepid"}}, nil)

	assert.Equal(t, "Hot", r.Resolve(context.Background(), "Hottest"))
	assert.Equal(t, "Cold", r.Resolve(context.Background(), "something else"))
}

func TestResolve_NilProvider(t *testing.T) {
	r := NewResolver(nil, nil)

	assert.Equal(t, "Hot", r.Resolve(context.Background(), "Hot"))
	assert.Equal(t, "Warm", r.Resolve(context.Background(), "warm-ish"))
	assert.Equal(t, "Cold", r.Resolve(context.Background(), "whatever"))
}

func TestResolve_VocabularyFetchedOnce(t *testing.T) {
	provider := &fakeProvider{options: []string{"Hot", "Warm", "Cold"}}
	r := NewResolver(provider, nil)

	r.Resolve(context.Background(), "Hot")
	r.Resolve(context.Background(), "Warm")
	r.Resolve(context.Background(), "Cold")

	assert.Equal(t, 1, provider.calls)
}

func TestResolve_FetchFailureRetriedNextCall(t *testing.T) {
	provider := &fakeProvider{err: errors.New("metadata API down")}
	r := NewResolver(provider, nil)

	// Failure resolves via fallback and does not poison the resolver.
	assert.Equal(t, "Hot", r.Resolve(context.Background(), "Hot"))

	provider.err = nil
	provider.options = []string{"🔥 Hot", "Warm", "Cold"}
	assert.Equal(t, "🔥 Hot", r.Resolve(context.Background(), "Hot"))
	assert.Equal(t, 2, provider.calls)
}

func TestResolve_MirrorsVocabularyInCache(t *testing.T) {
	cache := newFakeCache()
	provider := &fakeProvider{options: []string{"Hot", "Warm", "Cold"}}
	r := NewResolver(provider, cache)

	r.Resolve(context.Background(), "Hot")

	raw, err := cache.Get(context.Background(), vocabularyCacheKey)
	require.NoError(t, err)

	var mirrored []string
	require.NoError(t, json.Unmarshal([]byte(raw), &mirrored))
	assert.Equal(t, []string{"Hot", "Warm", "Cold"}, mirrored)
}

func TestResolve_PrefersCacheOverProvider(t *testing.T) {
	cache := newFakeCache()
	raw, _ := json.Marshal([]string{"🔥 Hot", "Warm", "Cold"})
	require.NoError(t, cache.Set(context.Background(), vocabularyCacheKey, string(raw), 0))

	provider := &fakeProvider{options: []string{"should not be used"}}
	r := NewResolver(provider, cache)

	assert.Equal(t, "🔥 Hot", r.Resolve(context.Background(), "Hot"))
	assert.Equal(t, 0, provider.calls)
}

func TestBucketFor(t *testing.T) {
	r := NewResolver(nil, nil)

	assert.Equal(t, domain.LabelHot, r.BucketFor("🔥 Hot"))
	assert.Equal(t, domain.LabelWarm, r.BucketFor(`"Warm"`))
	assert.Equal(t, domain.LabelCold, r.BucketFor("Ice Cold"))
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Hot", CleanLabel(`  "Hot" `))
	assert.Equal(t, "Warm", CleanLabel("'Warm'"))
	assert.Equal(t, "Cold", CleanLabel("Cold"))
}
