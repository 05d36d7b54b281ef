package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"lunch_oracle/internal/feature/oracle/domain"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("api error")

// mockImageScorer はImageScorerインターフェースのモック実装です。
type mockImageScorer struct {
	ScoreFunc  func(ctx context.Context, image []byte, mimeType string, labels []string) ([]float64, error)
	ScoreCalls int
}

func (m *mockImageScorer) Score(ctx context.Context, image []byte, mimeType string, labels []string) ([]float64, error) {
	m.ScoreCalls++
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, image, mimeType, labels)
	}
	return nil, errors.New("ScoreFunc is not implemented")
}

// mockTextGenerator はTextGeneratorインターフェースのモック実装です。
type mockTextGenerator struct {
	GenerateFunc  func(ctx context.Context, persona, prompt string) (string, error)
	GenerateCalls int
}

func (m *mockTextGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	m.GenerateCalls++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, persona, prompt)
	}
	return "", errors.New("GenerateFunc is not implemented")
}

// mockVenueSearcher はVenueSearcherインターフェースのモック実装です。
type mockVenueSearcher struct {
	SearchFunc  func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error)
	SearchCalls int
}

func (m *mockVenueSearcher) Search(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
	m.SearchCalls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return nil, errors.New("SearchFunc is not implemented")
}

// pngImage はテスト用の小さなPNG画像を生成するヘルパー関数です。
func pngImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// mustVocabulary はテスト用に語彙を生成するヘルパー関数です。
func mustVocabulary(t *testing.T, labels ...string) entity.LabelVocabulary {
	t.Helper()

	v, err := entity.NewLabelVocabulary(labels)
	if err != nil {
		t.Fatalf("failed to build vocabulary: %v", err)
	}
	return v
}

// memorySessionRepository はSessionRepositoryのテスト用インメモリ実装です。
type memorySessionRepository struct {
	sessions  map[string]entity.Session
	SaveCalls int
	SaveErr   error
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: map[string]entity.Session{}}
}

func (r *memorySessionRepository) Save(ctx context.Context, s *entity.Session) error {
	r.SaveCalls++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *memorySessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}
