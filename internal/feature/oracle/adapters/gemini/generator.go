package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"lunch_oracle/internal/feature/oracle/usecase"
)

// GeminiGenerator はGeminiでお告げの本文を生成します。
type GeminiGenerator struct {
	models contentGenerator
	model  string
}

// GeminiGeneratorがTextGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はGeminiGeneratorの新しいインスタンスを生成します。
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{models: client.Models, model: modelOrDefault(model)}
}

// Generate はpersonaをシステム指示としてpromptに応答します。
func (g *GeminiGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if persona != "" {
		cfg.SystemInstruction = genai.NewContentFromText(persona, genai.RoleUser)
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
