package cache

import (
	"context"
	"strconv"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/shared/digest"
)

// CachingImageScorer はImageScorerの結果を画像ダイジェストと語彙でメモ化します。
type CachingImageScorer struct {
	inner     usecase.ImageScorer
	store     Store
	namespace string
}

var _ usecase.ImageScorer = (*CachingImageScorer)(nil)

// NewCachingImageScorer はImageScorerをキャッシュでデコレートします。namespaceが空の場合は"classify"です。
func NewCachingImageScorer(store Store, inner usecase.ImageScorer, namespace string) *CachingImageScorer {
	if namespace == "" {
		namespace = "classify"
	}
	return &CachingImageScorer{inner: inner, store: store, namespace: namespace}
}

func (c *CachingImageScorer) Score(ctx context.Context, image []byte, mimeType string, labels []string) ([]float64, error) {
	key := c.namespace + ":" + digest.Sum(image, []byte(mimeType), []byte(strings.Join(labels, "\x1f")))
	return remember(ctx, c.store, key, func(ctx context.Context) ([]float64, error) {
		return c.inner.Score(ctx, image, mimeType, labels)
	})
}

// CachingTextGenerator はTextGeneratorの結果をロール指示と指示文でメモ化します。
type CachingTextGenerator struct {
	inner     usecase.TextGenerator
	store     Store
	namespace string
}

var _ usecase.TextGenerator = (*CachingTextGenerator)(nil)

// NewCachingTextGenerator はTextGeneratorをキャッシュでデコレートします。namespaceが空の場合は"prophecy"です。
func NewCachingTextGenerator(store Store, inner usecase.TextGenerator, namespace string) *CachingTextGenerator {
	if namespace == "" {
		namespace = "prophecy"
	}
	return &CachingTextGenerator{inner: inner, store: store, namespace: namespace}
}

func (c *CachingTextGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	key := c.namespace + ":" + digest.Strings(persona, prompt)
	return remember(ctx, c.store, key, func(ctx context.Context) (string, error) {
		return c.inner.Generate(ctx, persona, prompt)
	})
}

// CachingVenueSearcher はVenueSearcherの結果を検索クエリでメモ化します。
type CachingVenueSearcher struct {
	inner     usecase.VenueSearcher
	store     Store
	namespace string
}

var _ usecase.VenueSearcher = (*CachingVenueSearcher)(nil)

// NewCachingVenueSearcher はVenueSearcherをキャッシュでデコレートします。namespaceが空の場合は"venues"です。
func NewCachingVenueSearcher(store Store, inner usecase.VenueSearcher, namespace string) *CachingVenueSearcher {
	if namespace == "" {
		namespace = "venues"
	}
	return &CachingVenueSearcher{inner: inner, store: store, namespace: namespace}
}

func (c *CachingVenueSearcher) Search(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
	key := c.namespace + ":" + venueKey(q)
	return remember(ctx, c.store, key, func(ctx context.Context) ([]entity.Venue, error) {
		return c.inner.Search(ctx, q)
	})
}

func venueKey(q usecase.VenueQuery) string {
	tiers := make([]string, len(q.PriceTiers))
	for i, t := range q.PriceTiers {
		tiers[i] = strconv.Itoa(t)
	}
	return digest.Strings(q.Term, q.Location, strconv.Itoa(q.Limit), strings.Join(tiers, ","))
}
