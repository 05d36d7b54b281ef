// Package vision はGoogle Cloud Vision APIのラベル検出を使ったImageScorerを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"lunch_oracle/internal/feature/oracle/usecase"
)

// maxAnnotations はLABEL_DETECTIONで要求する最大件数です。
const maxAnnotations = 50

// annotation はVision APIのラベル注釈のうち照合に使う部分です。
type annotation struct {
	Description string
	Score       float64
}

// VisionLabelScorer はGoogle Cloud Visionのラベル検出結果を語彙のラベルに照合してスコアを付けます。
type VisionLabelScorer struct {
	client *gvision.ImageAnnotatorClient
}

// VisionLabelScorerがImageScorerを実装していることをコンパイル時に検証します。
var _ usecase.ImageScorer = (*VisionLabelScorer)(nil)

// NewVisionLabelScorer はADCを使用してVisionLabelScorerの新しいインスタンスを生成します。
func NewVisionLabelScorer(ctx context.Context) (*VisionLabelScorer, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionLabelScorer{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionLabelScorer) Close() error {
	return v.client.Close()
}

// Score は画像のラベル注釈を取得し、語彙のラベルごとのスコアを返します。
func (v *VisionLabelScorer) Score(ctx context.Context, image []byte, _ string, labels []string) ([]float64, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxAnnotations},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return make([]float64, len(labels)), nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	annots := make([]annotation, 0, len(resp.Responses[0].LabelAnnotations))
	for _, a := range resp.Responses[0].LabelAnnotations {
		annots = append(annots, annotation{Description: a.Description, Score: float64(a.Score)})
	}
	return scoreLabels(annots, labels), nil
}

// scoreLabels は各ラベルに、語が一致する注釈のうち最大のスコアを割り当てます。
// ラベル全体の語句か、その末尾の名詞（"a pair of keys"なら"key"）が注釈に含まれれば一致とし、単複は区別しません。
// 一致する注釈がないラベルは0です。
func scoreLabels(annots []annotation, labels []string) []float64 {
	out := make([]float64, len(labels))
	for i, l := range labels {
		phrase := words(coreWords(l))
		if len(phrase) == 0 {
			continue
		}
		head := phrase[len(phrase)-1:]
		for _, a := range annots {
			desc := words(a.Description)
			if containsSeq(desc, phrase) || containsSeq(desc, head) {
				out[i] = max(out[i], a.Score)
			}
		}
	}
	return out
}

// words は小文字化して単語に分割し、各単語を単数形にします。
func words(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, f := range fields {
		fields[i] = singular(f)
	}
	return fields
}

// singular は英語の規則的な複数形を単数形に戻します。
func singular(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case len(w) > 4 && (strings.HasSuffix(w, "ses") || strings.HasSuffix(w, "xes") ||
		strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes")):
		return strings.TrimSuffix(w, "es")
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return strings.TrimSuffix(w, "s")
	}
	return w
}

// containsSeq はhaystackにneedleが連続した部分列として含まれるかを返します。
func containsSeq(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, w := range needle {
			if haystack[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// coreWords は先頭の冠詞を除いた小文字のラベルを返します。
func coreWords(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, article := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(l, article) {
			return strings.TrimSpace(strings.TrimPrefix(l, article))
		}
	}
	return l
}
