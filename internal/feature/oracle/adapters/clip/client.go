// Package clip はHugging Face Inference APIのCLIPゼロショット画像分類を使ったImageScorerを提供します。
package clip

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"lunch_oracle/internal/feature/oracle/usecase"
)

const (
	// DefaultBaseURL はHugging Face Inference APIのエンドポイントです。
	DefaultBaseURL = "https://api-inference.huggingface.co"
	// DefaultModel はゼロショット分類に使うCLIPモデルです。
	DefaultModel = "openai/clip-vit-base-patch32"
)

// Config はCLIPクライアントの設定です。
type Config struct {
	APIToken string // Hugging Faceのアクセストークン
	BaseURL  string
	Model    string
}

// CLIPScorer はCLIPで画像と各ラベルの類似度を求めます。
type CLIPScorer struct {
	cfg    Config
	client *http.Client
}

// CLIPScorerがImageScorerを実装していることをコンパイル時に検証します。
var _ usecase.ImageScorer = (*CLIPScorer)(nil)

// NewCLIPScorer はCLIPScorerの新しいインスタンスを生成します。
func NewCLIPScorer(cfg Config, client *http.Client) *CLIPScorer {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &CLIPScorer{cfg: cfg, client: client}
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Score は画像とラベルを送信し、ラベル順のスコアを返します。
// APIは確率の降順で返すため、ラベル名で語彙順に並べ直します。
func (c *CLIPScorer) Score(ctx context.Context, image []byte, _ string, labels []string) ([]float64, error) {
	payload, err := json.Marshal(request{
		Inputs:     base64.StdEncoding.EncodeToString(image),
		Parameters: parameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/models/%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var e errorResponse
		if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error != "" {
			return nil, fmt.Errorf("clip http %d: %s", res.StatusCode, e.Error)
		}
		return nil, fmt.Errorf("clip http %d", res.StatusCode)
	}

	var body []labelScore
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode clip response: %w", err)
	}
	return reorder(body, labels)
}

// reorder はAPIの結果をlabelsの順に並べます。欠けているラベルがあればエラーです。
func reorder(got []labelScore, labels []string) ([]float64, error) {
	byLabel := make(map[string]float64, len(got))
	for _, s := range got {
		byLabel[s.Label] = s.Score
	}
	out := make([]float64, len(labels))
	for i, l := range labels {
		s, ok := byLabel[l]
		if !ok {
			return nil, fmt.Errorf("clip response is missing label %q", l)
		}
		out[i] = s
	}
	return out, nil
}
