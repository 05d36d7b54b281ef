// Package anthropic はAnthropic Messages APIを使ったお告げ生成クライアントを提供します。
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"lunch_oracle/internal/feature/oracle/usecase"
)

// DefaultModel はお告げ生成に使う既定のモデルです。
const DefaultModel = "claude-3-5-haiku-latest"

// Config はAnthropicクライアントの設定です。
type Config struct {
	APIKey    string
	BaseURL   string // 空の場合はhttps://api.anthropic.com/v1
	Model     string
	MaxTokens int
}

// AnthropicGenerator はMessages APIでお告げの本文を生成します。
type AnthropicGenerator struct {
	client *anthropic.Client
	cfg    Config
}

// AnthropicGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*AnthropicGenerator)(nil)

// NewAnthropicGenerator はAnthropicGeneratorの新しいインスタンスを生成します。
func NewAnthropicGenerator(cfg Config, httpClient *http.Client) (*AnthropicGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	opts := []anthropic.ClientOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, anthropic.WithHTTPClient(httpClient))
	}
	return &AnthropicGenerator{client: anthropic.NewClient(cfg.APIKey, opts...), cfg: cfg}, nil
}

// Generate はpersonaをsystemとしてpromptに応答し、テキストブロックを連結して返します。
func (g *AnthropicGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(g.cfg.Model),
		System:    persona,
		MaxTokens: g.cfg.MaxTokens,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API request failed: %w", err)
	}

	var b strings.Builder
	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			b.WriteString(c.GetText())
		}
	}
	return b.String(), nil
}
