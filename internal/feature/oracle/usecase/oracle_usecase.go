package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"lunch_oracle/internal/feature/oracle/domain"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/shared/digest"
)

const (
	// MaxLabelLength は上書きラベルの最大文字数（rune数）です。
	MaxLabelLength = 100
	// MaxReflectionLength はリフレクション1件の最大文字数（rune数）です。
	MaxReflectionLength = 500
	// MaxReflections はリフレクションの最大件数です。
	MaxReflections = 5
)

// ObjectClassifier は画像を分類します。overrideが空でなければ分類を省略します。
type ObjectClassifier interface {
	Classify(ctx context.Context, image []byte, override string) entity.ClassificationResult
}

// ProphecyGenerator はお告げを生成します。
type ProphecyGenerator interface {
	Prophesy(ctx context.Context, label string, reflections []string) entity.Prophecy
}

// VenueFinder は料理キーワードから店舗を検索します。
type VenueFinder interface {
	FindVenues(ctx context.Context, keyword string) entity.VenueResult
}

// OracleUsecase はセッションごとに分類→お告げ→店舗検索のパイプラインを進めます。
type OracleUsecase struct {
	classifier ObjectClassifier
	prophet    ProphecyGenerator
	venues     VenueFinder
	sessions   SessionRepository
	questions  *ReflectionQuestions
	now        func() time.Time
	newID      func() string
}

// NewOracleUsecase はOracleUsecaseの新しいインスタンスを生成します。
// questionsがnilの場合はセッションに質問文を設定しません。
func NewOracleUsecase(c ObjectClassifier, p ProphecyGenerator, v VenueFinder, sessions SessionRepository, questions *ReflectionQuestions) *OracleUsecase {
	return &OracleUsecase{
		classifier: c,
		prophet:    p,
		venues:     v,
		sessions:   sessions,
		questions:  questions,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// StartSession は新しいセッションを作成し、画像を分類します。
// labelが空でない場合は分類を行わず、そのラベルを採用します。
func (u *OracleUsecase) StartSession(ctx context.Context, image []byte, label string) (*entity.Session, error) {
	if err := validateSubmission(image, label); err != nil {
		return nil, err
	}
	s := entity.NewSession(u.newID(), u.now())
	if err := u.classify(ctx, s, image, label); err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}
	slog.Info("session started", "session_id", s.ID, "label", s.Label, "state", s.State)
	return s, nil
}

// ResubmitImage はセッションをAWAITING_IMAGEに戻し、新しい画像で分類し直します。
func (u *OracleUsecase) ResubmitImage(ctx context.Context, id string, image []byte, label string) (*entity.Session, error) {
	if err := validateSubmission(image, label); err != nil {
		return nil, err
	}
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Transition(entity.StateAwaitingImage, u.now()); err != nil {
		return nil, err
	}
	if err := u.classify(ctx, s, image, label); err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return s, nil
}

// OverrideLabel は分類結果をユーザー指定のラベルで上書きします。
func (u *OracleUsecase) OverrideLabel(ctx context.Context, id, label string) (*entity.Session, error) {
	label = strings.TrimSpace(label)
	if err := validateLabel(label); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", domain.ErrInvalidInput)
	}
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Transition(entity.StateClassifiedOverridden, u.now()); err != nil {
		return nil, err
	}
	u.applyClassification(s, u.classifier.Classify(ctx, nil, label))
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return s, nil
}

// ConfirmLabel は現在のラベルを確定し、リフレクション待ちに進めます。
func (u *OracleUsecase) ConfirmLabel(ctx context.Context, id string) (*entity.Session, error) {
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Transition(entity.StateAwaitingReflection, u.now()); err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return s, nil
}

// Reflect はリフレクションを受け取り、お告げの生成と店舗検索を行います。
// 確認前に呼ばれた場合は暗黙に確認したものとして扱います。
func (u *OracleUsecase) Reflect(ctx context.Context, id string, reflections []string) (*entity.Session, error) {
	cleaned, err := validateReflections(reflections)
	if err != nil {
		return nil, err
	}
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.State == entity.StateAwaitingConfirmation || s.State == entity.StateClassifiedOverridden {
		if err := s.Transition(entity.StateAwaitingReflection, u.now()); err != nil {
			return nil, err
		}
	}
	if err := s.Transition(entity.StateProphesied, u.now()); err != nil {
		return nil, err
	}

	s.Reflections = cleaned
	prophecy := u.prophet.Prophesy(ctx, s.Label, cleaned)
	s.Prophecy = &prophecy

	venues := u.venues.FindVenues(ctx, prophecy.Keyword)
	s.Venues = &venues
	if err := s.Transition(entity.StateVenuesResolved, u.now()); err != nil {
		return nil, err
	}

	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}
	slog.Info("session resolved", "session_id", s.ID, "keyword", prophecy.Keyword, "venues", len(venues.Venues))
	return s, nil
}

// GetSession はセッションを返します。
func (u *OracleUsecase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	return u.sessions.FindByID(ctx, id)
}

// classify はAWAITING_IMAGE状態のセッションに分類結果を設定し、状態を進めます。
func (u *OracleUsecase) classify(ctx context.Context, s *entity.Session, image []byte, label string) error {
	label = strings.TrimSpace(label)
	if len(image) > 0 {
		s.ImageDigest = digest.Sum(image)
	}
	res := u.classifier.Classify(ctx, image, label)
	u.applyClassification(s, res)

	if res.Overridden {
		return s.Transition(entity.StateClassifiedOverridden, u.now())
	}
	if err := s.Transition(entity.StateClassified, u.now()); err != nil {
		return err
	}
	return s.Transition(entity.StateAwaitingConfirmation, u.now())
}

// applyClassification は分類結果とラベルに応じた質問文をセッションに設定します。
func (u *OracleUsecase) applyClassification(s *entity.Session, res entity.ClassificationResult) {
	s.Classification = &res
	s.Label = res.Label
	questions, err := u.questions.Render(res.Label)
	if err != nil {
		slog.Warn("failed to render reflection questions", "session_id", s.ID, "error", err)
	}
	s.Questions = questions
}

func validateSubmission(image []byte, label string) error {
	label = strings.TrimSpace(label)
	if len(image) == 0 && label == "" {
		return fmt.Errorf("%w: image or label is required", domain.ErrInvalidInput)
	}
	if len(image) > MaxImageSize {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, errImageTooLarge)
	}
	return validateLabel(label)
}

func validateLabel(label string) error {
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds maximum length of %d characters", domain.ErrInvalidInput, MaxLabelLength)
	}
	return nil
}

func validateReflections(reflections []string) ([]string, error) {
	if len(reflections) == 0 {
		return nil, fmt.Errorf("%w: at least one reflection is required", domain.ErrInvalidInput)
	}
	if len(reflections) > MaxReflections {
		return nil, fmt.Errorf("%w: at most %d reflections are allowed", domain.ErrInvalidInput, MaxReflections)
	}
	out := make([]string, 0, len(reflections))
	for i, r := range reflections {
		r = strings.TrimSpace(r)
		if r == "" {
			return nil, fmt.Errorf("%w: reflection %d is empty", domain.ErrInvalidInput, i+1)
		}
		if utf8.RuneCountInString(r) > MaxReflectionLength {
			return nil, fmt.Errorf("%w: reflection %d exceeds maximum length of %d characters", domain.ErrInvalidInput, i+1, MaxReflectionLength)
		}
		out = append(out, r)
	}
	return out, nil
}
