// Package openai はOpenAI Chat Completions APIを使ったお告げ生成クライアントを提供します。
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"lunch_oracle/internal/feature/oracle/usecase"
)

// DefaultModel はお告げ生成に使う既定のモデルです。
const DefaultModel = openai.GPT3Dot5Turbo

// Config はOpenAIクライアントの設定です。
type Config struct {
	APIKey      string
	BaseURL     string // 空の場合はOpenAIの公開エンドポイント
	Model       string
	MaxTokens   int
	Temperature float32
}

// OpenAIGenerator はChat Completionsでお告げの本文を生成します。
type OpenAIGenerator struct {
	client *openai.Client
	cfg    Config
}

// OpenAIGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator はOpenAIGeneratorの新しいインスタンスを生成します。
func NewOpenAIGenerator(cfg Config, httpClient *http.Client) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		cc.HTTPClient = httpClient
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cc), cfg: cfg}, nil
}

// Generate はpersonaをsystemメッセージ、promptをuserメッセージとして送信します。
func (g *OpenAIGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if persona != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: persona})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Messages:    messages,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
