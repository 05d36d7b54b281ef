package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/shared/resilience"
)

// ClassifyUsecase は画像をラベル語彙のいずれか1つに分類します。
type ClassifyUsecase struct {
	scorer ImageScorer
	vocab  entity.LabelVocabulary
	policy resilience.Policy
}

// NewClassifyUsecase はClassifyUsecaseの新しいインスタンスを生成します。
func NewClassifyUsecase(scorer ImageScorer, vocab entity.LabelVocabulary, policy resilience.Policy) *ClassifyUsecase {
	return &ClassifyUsecase{scorer: scorer, vocab: vocab, policy: policy}
}

// Vocabulary は分類に使うラベル語彙を返します。
func (u *ClassifyUsecase) Vocabulary() entity.LabelVocabulary { return u.vocab }

// Classify は画像を分類します。overrideが空でない場合は分類を行わず、そのラベルをそのまま返します。
// 失敗してもエラーは返さず、UnknownLabelとFailureを持つ結果を返します。
func (u *ClassifyUsecase) Classify(ctx context.Context, image []byte, override string) entity.ClassificationResult {
	if o := strings.TrimSpace(override); o != "" {
		return entity.ClassificationResult{Label: o, Overridden: true}
	}

	mimeType, err := ValidateImage(image)
	if err != nil {
		return u.fail(err)
	}

	labels := u.vocab.Labels()
	var raw []float64
	err = u.policy.Run(ctx, func(ctx context.Context) error {
		var err error
		raw, err = u.scorer.Score(ctx, image, mimeType, labels)
		return err
	})
	if err != nil {
		return u.fail(fmt.Errorf("image scorer failed: %w", err))
	}

	res, err := SelectLabel(u.vocab, raw)
	if err != nil {
		return u.fail(err)
	}
	return res
}

func (u *ClassifyUsecase) fail(err error) entity.ClassificationResult {
	slog.Warn("classification failed", "error", err)
	return entity.ClassificationResult{
		Label:   entity.UnknownLabel,
		Failure: entity.NewFailure(entity.ClassificationFailure, err),
	}
}

var errScoreVector = errors.New("invalid score vector")

// SelectLabel は生スコアを確率分布に正規化し、最大確率のラベルを選びます。
// 同点の場合は語彙順で最初のラベルを選びます。スコアの総和が0の場合は一様分布とします。
func SelectLabel(vocab entity.LabelVocabulary, raw []float64) (entity.ClassificationResult, error) {
	if len(raw) != vocab.Len() {
		return entity.ClassificationResult{}, fmt.Errorf("%w: got %d scores for %d labels", errScoreVector, len(raw), vocab.Len())
	}

	sum := 0.0
	for i, s := range raw {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return entity.ClassificationResult{}, fmt.Errorf("%w: score %d is %v", errScoreVector, i, s)
		}
		sum += s
	}

	scores := make([]entity.LabelScore, len(raw))
	best := 0
	for i, s := range raw {
		p := 1.0 / float64(len(raw))
		if sum > 0 {
			p = s / sum
		}
		scores[i] = entity.LabelScore{Label: vocab.At(i), Score: p}
		if p > scores[best].Score {
			best = i
		}
	}

	return entity.ClassificationResult{Label: vocab.At(best), Scores: scores}, nil
}
