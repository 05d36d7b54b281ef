// Package usecase はoracleフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"lunch_oracle/internal/feature/oracle/domain/entity"
)

// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。

// ImageScorer は画像と各ラベルの類似度スコアを計算する外部プロバイダです。
type ImageScorer interface {
	// Score はlabelsと同じ順序・同じ長さのスコアを返します。
	Score(ctx context.Context, image []byte, mimeType string, labels []string) ([]float64, error)
}

// TextGenerator はペルソナ付きの指示文から1つの応答を生成する外部プロバイダです。
type TextGenerator interface {
	Generate(ctx context.Context, persona, prompt string) (string, error)
}

// VenueQuery は店舗検索プロバイダへの問い合わせです。
type VenueQuery struct {
	Term       string // 例: "ramen restaurant"
	Location   string
	Limit      int
	PriceTiers []int // 1（安い）〜4（高い）
}

// VenueSearcher は店舗検索プロバイダです。プロバイダの関連度順で返します。
type VenueSearcher interface {
	Search(ctx context.Context, q VenueQuery) ([]entity.Venue, error)
}

// SessionRepository はセッションの保存先です。
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	// FindByID は存在しない場合にdomain.ErrSessionNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
