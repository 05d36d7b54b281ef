package di

import (
	"context"
	"fmt"
	"log/slog"

	"lunch_oracle/internal/app/config"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/platform/cache"
	jwtmw "lunch_oracle/internal/platform/jwt"
)

// NewClassifyUsecase は設定からClassifyUsecaseを生成します。
func NewClassifyUsecase(ctx context.Context, cfg *config.Config, store cache.Store) (*usecase.ClassifyUsecase, func(), error) {
	vocab, err := entity.NewLabelVocabulary(cfg.Oracle.Labels)
	if err != nil {
		return nil, nil, fmt.Errorf("oracle.labels: %w", err)
	}
	scorer, closer, err := NewImageScorer(ctx, cfg, store)
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewClassifyUsecase(scorer, vocab, NewPolicy("classifier", cfg.Classifier.Call)), closer, nil
}

// NewProphecyUsecase は設定からProphecyUsecaseを生成します。
func NewProphecyUsecase(ctx context.Context, cfg *config.Config, store cache.Store) (*usecase.ProphecyUsecase, error) {
	extractor, err := NewKeywordExtractor(cfg)
	if err != nil {
		return nil, err
	}
	prompt, err := usecase.NewPromptTemplate(cfg.Oracle.Persona, cfg.Oracle.PromptTemplate, extractor.Dictionary())
	if err != nil {
		return nil, fmt.Errorf("oracle.prompt_template: %w", err)
	}
	gen, err := NewTextGenerator(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	return usecase.NewProphecyUsecase(gen, prompt, extractor, NewPolicy("prophet", cfg.Prophet.Call)), nil
}

// NewKeywordExtractor は設定の料理辞書からKeywordExtractorを生成します。
func NewKeywordExtractor(cfg *config.Config) (*usecase.KeywordExtractor, error) {
	extractor, err := usecase.NewKeywordExtractor(cfg.Oracle.Cuisines)
	if err != nil {
		return nil, fmt.Errorf("oracle.cuisines: %w", err)
	}
	return extractor, nil
}

// NewVenueUsecase は設定からVenueUsecaseを生成します。
func NewVenueUsecase(cfg *config.Config, store cache.Store) (*usecase.VenueUsecase, error) {
	searcher, err := NewVenueSearcher(cfg, store)
	if err != nil {
		return nil, err
	}
	return usecase.NewVenueUsecase(searcher, usecase.VenueConfig{
		Location:   cfg.Venues.Location,
		Qualifier:  cfg.Venues.Qualifier,
		Limit:      cfg.Venues.Limit,
		PriceTiers: cfg.Venues.PriceTiers,
	}, NewPolicy("venues", cfg.Venues.Call)), nil
}

// NewOracleUsecase はパイプライン全体を組み立てます。
// 戻り値のcloseは呼び出し元がdeferすること。
func NewOracleUsecase(ctx context.Context, cfg *config.Config, store cache.Store, sessions usecase.SessionRepository) (*usecase.OracleUsecase, func(), error) {
	classifier, closer, err := NewClassifyUsecase(ctx, cfg, store)
	if err != nil {
		return nil, nil, err
	}
	prophet, err := NewProphecyUsecase(ctx, cfg, store)
	if err != nil {
		closer()
		return nil, nil, err
	}
	venues, err := NewVenueUsecase(cfg, store)
	if err != nil {
		closer()
		return nil, nil, err
	}
	questions, err := usecase.NewReflectionQuestions(cfg.Oracle.Questions)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return usecase.NewOracleUsecase(classifier, prophet, venues, sessions, questions), closer, nil
}

// NewTokenGenerator はセッショントークンの発行器を生成します。
// 秘密鍵が未設定の場合は起動ごとに異なるランダムな鍵を使います。
func NewTokenGenerator(cfg config.SessionConfig) (*jwtmw.HMACGenerator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. Tokens will not survive a restart. Set a strong secret in production.")
		s, err := jwtmw.RandomSecret()
		if err != nil {
			return nil, err
		}
		secret = s
	}
	return jwtmw.NewGenerator(secret, cfg.TokenTTL), nil
}
