package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"lunch_oracle/internal/feature/oracle/usecase"
)

// GeminiScorer はGeminiのマルチモーダル入力で画像と各ラベルの一致度を求めます。
type GeminiScorer struct {
	models contentGenerator
	model  string
}

// GeminiScorerがImageScorerを実装していることをコンパイル時に検証します。
var _ usecase.ImageScorer = (*GeminiScorer)(nil)

// NewGeminiScorer はGeminiScorerの新しいインスタンスを生成します。
func NewGeminiScorer(client *genai.Client, model string) *GeminiScorer {
	return &GeminiScorer{models: client.Models, model: modelOrDefault(model)}
}

// Score は画像とラベル一覧を送り、JSONで返されたラベルごとのスコアをラベル順で返します。
func (g *GeminiScorer) Score(ctx context.Context, image []byte, mimeType string, labels []string) ([]float64, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText(scorePrompt(labels)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}
	return parseScores(resp.Text(), labels)
}

func scorePrompt(labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return "Classify the object in this image. For each candidate label give a probability between 0 and 1 " +
		"that the label describes the main object. Candidate labels: [" + strings.Join(quoted, ", ") + "]. " +
		`Respond only with JSON of the form {"scores": {"<label>": <probability>, ...}} using every label exactly as given.`
}

type scoresResponse struct {
	Scores map[string]float64 `json:"scores"`
}

// parseScores はモデルの応答からラベル順のスコアを取り出します。
// コードフェンスで囲まれた応答も受け付け、欠けたラベルは0とします。
func parseScores(text string, labels []string) ([]float64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var body scoresResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &body); err != nil {
		return nil, fmt.Errorf("decode gemini scores: %w", err)
	}
	if len(body.Scores) == 0 {
		return nil, fmt.Errorf("gemini returned no scores")
	}

	lower := make(map[string]float64, len(body.Scores))
	for k, v := range body.Scores {
		lower[strings.ToLower(strings.TrimSpace(k))] = v
	}
	out := make([]float64, len(labels))
	for i, l := range labels {
		v, ok := body.Scores[l]
		if !ok {
			v = lower[strings.ToLower(l)]
		}
		out[i] = math.Max(v, 0)
	}
	return out, nil
}
