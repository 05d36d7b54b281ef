package cache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/platform/session"
	"lunch_oracle/internal/shared/resilience"
)

// testPNG はテスト用の小さなPNG画像を生成するヘルパー関数です。
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// 同じ画像とリフレクションを2回送っても、プロバイダは1回ずつしか呼ばれず、結果は同一になる
func TestCachedPipeline_SameInputsReuseProviderResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(0)

	scorer := &mockScorer{fn: func() ([]float64, error) { return []float64{0.9, 0.05, 0.05}, nil }}
	gen := &mockGenerator{fn: func() (string, error) {
		return "The mug whispers of a steaming bowl of soup.", nil
	}}
	searcher := &mockSearcher{fn: func() ([]entity.Venue, error) {
		return []entity.Venue{
			{Name: "Soup Shack", Address: "1 Main St", PriceTier: "$"},
			{Name: "Broth Bar", Address: "2 Main St", PriceTier: "$$"},
		}, nil
	}}

	vocab, err := entity.NewLabelVocabulary([]string{"a mug", "a wallet", "a fork"})
	require.NoError(t, err)
	prompt, err := usecase.NewPromptTemplate(usecase.DefaultPersona, usecase.DefaultPromptTemplate, usecase.DefaultCuisines)
	require.NoError(t, err)
	extractor, err := usecase.NewKeywordExtractor(usecase.DefaultCuisines)
	require.NoError(t, err)

	oracle := usecase.NewOracleUsecase(
		usecase.NewClassifyUsecase(NewCachingImageScorer(store, scorer, ""), vocab, resilience.Policy{}),
		usecase.NewProphecyUsecase(NewCachingTextGenerator(store, gen, ""), prompt, extractor, resilience.Policy{}),
		usecase.NewVenueUsecase(NewCachingVenueSearcher(store, searcher, ""), usecase.VenueConfig{Qualifier: usecase.DefaultQualifier}, resilience.Policy{}),
		session.NewSessionMemory(0),
		nil,
	)

	img := testPNG(t)
	reflections := []string{"it keeps me warm", "it was a gift"}

	run := func() *entity.Session {
		started, err := oracle.StartSession(ctx, img, "")
		require.NoError(t, err)
		resolved, err := oracle.Reflect(ctx, started.ID, reflections)
		require.NoError(t, err)
		require.NotNil(t, resolved.Prophecy)
		require.NotNil(t, resolved.Venues)
		return resolved
	}

	first := run()
	second := run()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "a mug", first.Label)
	assert.Equal(t, first.Label, second.Label)
	assert.Equal(t, "soup", first.Prophecy.Keyword)
	assert.Equal(t, *first.Prophecy, *second.Prophecy)
	assert.Equal(t, *first.Venues, *second.Venues)
	assert.Nil(t, first.Venues.Failure)

	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, searcher.calls)
}
