package scoring

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// VocabularyProvider returns the record store's accepted score-label option
// strings (e.g. via the Airtable field metadata API). Implementations may
// return an empty slice when the vocabulary is unavailable.
type VocabularyProvider interface {
	ScoreLabelOptions(ctx context.Context) ([]string, error)
}

// VocabularyCache mirrors the fetched vocabulary so restarts don't hit the
// metadata API again. Losing the mirror is harmless.
type VocabularyCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

const vocabularyCacheKey = "scoring:label_options"

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// Resolver reconciles candidate score labels against the record store's
// accepted vocabulary. Resolution never fails: unmatched input falls back to
// one of the three canonical bucket literals.
type Resolver struct {
	provider VocabularyProvider
	cache    VocabularyCache // optional

	mu      sync.Mutex
	loaded  bool
	options []string
}

// NewResolver creates a label resolver. Both provider and cache may be nil;
// without a provider the resolver always uses the canonical bucket literals.
func NewResolver(provider VocabularyProvider, cache VocabularyCache) *Resolver {
	return &Resolver{provider: provider, cache: cache}
}

// Resolve reconciles a candidate label to an accepted representation.
// It is idempotent: resolving an already-resolved label returns it unchanged.
func (r *Resolver) Resolve(ctx context.Context, candidate string) string {
	cleaned := CleanLabel(candidate)

	options := r.vocabulary(ctx)
	if len(options) > 0 {
		for _, o := range options {
			if o == cleaned {
				return o
			}
		}

		reduced := normalizeLabel(cleaned)
		for _, o := range options {
			if normalizeLabel(o) == reduced {
				return o
			}
		}

		log.Printf("⚠️  No vocabulary match for score label %q, falling back to bucket literal", cleaned)
	}

	return string(fallbackBucket(cleaned))
}

// BucketFor maps any candidate label to one of the three canonical buckets,
// regardless of how the record store spells it.
func (r *Resolver) BucketFor(candidate string) domain.ScoreLabel {
	return fallbackBucket(CleanLabel(candidate))
}

// CleanLabel strips quoting characters and surrounding whitespace. LLMs
// sometimes wrap string values in quotes.
func CleanLabel(label string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '"' || r == '\'' {
			return -1
		}
		return r
	}, label)
	return strings.TrimSpace(cleaned)
}

// normalizeLabel reduces a label to its comparable form: everything that is
// not alphanumeric or a space is dropped, the rest lowercased.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(nonWordRe.ReplaceAllString(label, "")))
}

// fallbackBucket infers the bucket from the cleaned string's leading token.
func fallbackBucket(cleaned string) domain.ScoreLabel {
	switch {
	case strings.HasPrefix(normalizeLabel(cleaned), "hot"):
		return domain.LabelHot
	case strings.HasPrefix(normalizeLabel(cleaned), "warm"):
		return domain.LabelWarm
	default:
		return domain.LabelCold
	}
}

// vocabulary returns the remote label options, fetching them on first use.
// The result is kept for the process lifetime; failures resolve to an empty
// vocabulary and are retried on the next call.
func (r *Resolver) vocabulary(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.options
	}
	if r.provider == nil {
		r.loaded = true
		return nil
	}

	// Try the soft cache first
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, vocabularyCacheKey); err == nil && raw != "" {
			var options []string
			if err := json.Unmarshal([]byte(raw), &options); err == nil && len(options) > 0 {
				r.options = options
				r.loaded = true
				return r.options
			}
		}
	}

	options, err := r.provider.ScoreLabelOptions(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to fetch score label vocabulary: %v", err)
		return nil
	}

	r.options = options
	r.loaded = true

	if r.cache != nil && len(options) > 0 {
		if raw, err := json.Marshal(options); err == nil {
			if err := r.cache.Set(ctx, vocabularyCacheKey, string(raw), 0); err != nil {
				log.Printf("⚠️  Failed to mirror score label vocabulary: %v", err)
			}
		}
	}

	return r.options
}
