// Package gemini はGoogle Gemini APIを使った画像分類とお告げ生成のクライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// Config はGeminiクライアントの設定です。APIKeyが空の場合はADCと
// GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION を使います。
type Config struct {
	APIKey string
	Model  string
}

// contentGenerator は*genai.Modelsのうち利用するメソッドです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient はgenaiクライアントを生成します。
func NewClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

func modelOrDefault(m string) string {
	if m == "" {
		return DefaultModel
	}
	return m
}
