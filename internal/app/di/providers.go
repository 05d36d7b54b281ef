package di

import (
	"context"
	"errors"
	"fmt"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/feature/oracle/adapters/anthropic"
	"lunch_oracle/internal/feature/oracle/adapters/clip"
	"lunch_oracle/internal/feature/oracle/adapters/gemini"
	"lunch_oracle/internal/feature/oracle/adapters/openai"
	"lunch_oracle/internal/feature/oracle/adapters/vision"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/platform/cache"
	"lunch_oracle/internal/platform/externalapi/places"
	"lunch_oracle/internal/platform/externalapi/yelp"
	infrahttp "lunch_oracle/internal/platform/http"
	"lunch_oracle/internal/shared/ratelimiter"
	"lunch_oracle/internal/shared/resilience"
)

// NewPolicy は設定からプロバイダ呼び出しのポリシーを生成します。レート制限はプロバイダごとです。
func NewPolicy(name string, c config.CallConfig) resilience.Policy {
	return resilience.Policy{
		Timeout: c.Timeout,
		Retries: c.Retries,
		Backoff: c.Backoff,
		Limiter: ratelimiter.NewRateLimiter(name, c.RatePerSecond, c.Burst),
	}
}

// NewImageScorer はclassifier.backendに応じた画像スコアラーを生成します。
// 戻り値のcloseは呼び出し元がdeferすること。
func NewImageScorer(ctx context.Context, cfg *config.Config, store cache.Store) (usecase.ImageScorer, func(), error) {
	var (
		scorer usecase.ImageScorer
		closer = func() {}
	)
	c := cfg.Classifier

	switch c.Backend {
	case "clip":
		scorer = clip.NewCLIPScorer(clip.Config{
			APIToken: c.CLIP.APIToken,
			BaseURL:  c.CLIP.BaseURL,
			Model:    c.CLIP.Model,
		}, infrahttp.NewHTTPClient(c.Call.Timeout))
	case "vision":
		v, err := vision.NewVisionLabelScorer(ctx)
		if err != nil {
			return nil, nil, err
		}
		scorer = v
		closer = func() { _ = v.Close() }
	case "gemini":
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey})
		if err != nil {
			return nil, nil, err
		}
		scorer = gemini.NewGeminiScorer(client, c.GeminiModel)
	default:
		return nil, nil, fmt.Errorf("unknown classifier backend %q", c.Backend)
	}

	if store != nil {
		scorer = cache.NewCachingImageScorer(store, scorer, "classify")
	}
	return scorer, closer, nil
}

// NewTextGenerator はprophet.backendに応じたテキスト生成クライアントを生成します。
func NewTextGenerator(ctx context.Context, cfg *config.Config, store cache.Store) (usecase.TextGenerator, error) {
	var gen usecase.TextGenerator
	p := cfg.Prophet
	httpClient := infrahttp.NewHTTPClient(p.Call.Timeout)

	switch p.Backend {
	case "openai":
		g, err := openai.NewOpenAIGenerator(openai.Config{
			APIKey:      p.OpenAI.APIKey,
			BaseURL:     p.OpenAI.BaseURL,
			Model:       p.OpenAI.Model,
			MaxTokens:   p.OpenAI.MaxTokens,
			Temperature: p.OpenAI.Temperature,
		}, httpClient)
		if err != nil {
			return nil, err
		}
		gen = g
	case "anthropic":
		g, err := anthropic.NewAnthropicGenerator(anthropic.Config{
			APIKey:    p.Anthropic.APIKey,
			BaseURL:   p.Anthropic.BaseURL,
			Model:     p.Anthropic.Model,
			MaxTokens: p.Anthropic.MaxTokens,
		}, httpClient)
		if err != nil {
			return nil, err
		}
		gen = g
	case "gemini":
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey})
		if err != nil {
			return nil, err
		}
		gen = gemini.NewGeminiGenerator(client, p.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown prophet backend %q", p.Backend)
	}

	if store != nil {
		gen = cache.NewCachingTextGenerator(store, gen, "prophecy")
	}
	return gen, nil
}

// NewVenueSearcher はvenues.backendに応じた店舗検索クライアントを生成します。
func NewVenueSearcher(cfg *config.Config, store cache.Store) (usecase.VenueSearcher, error) {
	var searcher usecase.VenueSearcher
	v := cfg.Venues
	httpClient := infrahttp.NewHTTPClient(v.Call.Timeout)

	switch v.Backend {
	case "yelp":
		if v.Yelp.APIKey == "" {
			return nil, errors.New("yelp api key is required")
		}
		searcher = yelp.NewYelpSearcher(yelp.Config{APIKey: v.Yelp.APIKey, BaseURL: v.Yelp.BaseURL, Timeout: v.Call.Timeout}, httpClient)
	case "places":
		if v.Places.APIKey == "" {
			return nil, errors.New("places api key is required")
		}
		searcher = places.NewPlacesSearcher(places.Config{APIKey: v.Places.APIKey, BaseURL: v.Places.BaseURL, Timeout: v.Call.Timeout}, httpClient)
	default:
		return nil, fmt.Errorf("unknown venues backend %q", v.Backend)
	}

	if store != nil {
		searcher = cache.NewCachingVenueSearcher(store, searcher, "venues")
	}
	return searcher, nil
}
