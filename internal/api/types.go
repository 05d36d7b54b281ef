// Package api はHTTP APIのリクエスト・レスポンスの型を定義します。
package api

import "time"

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// LabelRequest はラベル上書きのリクエストです。
type LabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// ReflectionsRequest はリフレクション送信のリクエストです。
type ReflectionsRequest struct {
	Reflections []string `json:"reflections" binding:"required,min=1"`
}

// SessionResponse はセッションの表示用レスポンスです。
// Tokenはセッション作成時のみ設定されます。
type SessionResponse struct {
	ID             string                  `json:"id"`
	State          string                  `json:"state"`
	Label          string                  `json:"label,omitempty"`
	Questions      []string                `json:"questions,omitempty"`
	Classification *ClassificationResponse `json:"classification,omitempty"`
	Reflections    []string                `json:"reflections,omitempty"`
	Prophecy       *ProphecyResponse       `json:"prophecy,omitempty"`
	Venues         []VenueResponse         `json:"venues,omitempty"`
	Failures       []FailureResponse       `json:"failures,omitempty"`
	Token          string                  `json:"token,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ClassificationResponse は分類結果です。
type ClassificationResponse struct {
	Label      string          `json:"label"`
	Overridden bool            `json:"overridden"`
	Scores     []LabelScoreDTO `json:"scores,omitempty"`
}

// LabelScoreDTO はラベルごとの確率です。
type LabelScoreDTO struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ProphecyResponse はお告げです。
type ProphecyResponse struct {
	Narrative string `json:"narrative"`
	Keyword   string `json:"keyword"`
}

// VenueResponse は店舗です。Displayは"name - address (Price: $)"形式の表示文字列です。
type VenueResponse struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	PriceTier   string `json:"price_tier,omitempty"`
	Category    string `json:"category,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Display     string `json:"display"`
}

// FailureResponse は劣化した段階の失敗理由です。
type FailureResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
