package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/shared/resilience"
)

// generationErrorPrefix はテキスト生成失敗時のお告げの接頭辞です。
const generationErrorPrefix = "Error generating lunch prophecy: "

var errEmptyCompletion = errors.New("text generator returned an empty completion")

// ProphecyUsecase はラベルとリフレクションからお告げを生成し、料理キーワードを抽出します。
type ProphecyUsecase struct {
	generator TextGenerator
	prompt    *PromptTemplate
	extractor *KeywordExtractor
	policy    resilience.Policy
}

// NewProphecyUsecase はProphecyUsecaseの新しいインスタンスを生成します。
func NewProphecyUsecase(gen TextGenerator, prompt *PromptTemplate, extractor *KeywordExtractor, policy resilience.Policy) *ProphecyUsecase {
	return &ProphecyUsecase{generator: gen, prompt: prompt, extractor: extractor, policy: policy}
}

// Prophesy はお告げを生成します。生成に失敗した場合もエラーは返さず、
// エラーメッセージの本文とDefaultFoodKeywordを持つ結果を返します。
func (u *ProphecyUsecase) Prophesy(ctx context.Context, label string, reflections []string) entity.Prophecy {
	prompt, err := u.prompt.Render(label, reflections)
	if err != nil {
		return u.fail(err)
	}

	var narrative string
	err = u.policy.Run(ctx, func(ctx context.Context) error {
		out, err := u.generator.Generate(ctx, u.prompt.Persona(), prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return errEmptyCompletion
		}
		narrative = strings.TrimSpace(out)
		return nil
	})
	if err != nil {
		return u.fail(fmt.Errorf("text generator failed: %w", err))
	}

	return entity.Prophecy{Narrative: narrative, Keyword: u.extractor.Extract(narrative)}
}

func (u *ProphecyUsecase) fail(err error) entity.Prophecy {
	slog.Warn("prophecy generation failed", "error", err)
	return entity.Prophecy{
		Narrative: generationErrorPrefix + err.Error(),
		Keyword:   entity.DefaultFoodKeyword,
		Failure:   entity.NewFailure(entity.GenerationFailure, err),
	}
}
