package entity

import (
	"fmt"
	"time"
)

// State はセッションの状態です。
type State string

const (
	StateAwaitingImage        State = "AWAITING_IMAGE"
	StateClassified           State = "CLASSIFIED"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateClassifiedOverridden State = "CLASSIFIED_OVERRIDDEN"
	StateAwaitingReflection   State = "AWAITING_REFLECTION"
	StateProphesied           State = "PROPHESIED"
	StateVenuesResolved       State = "VENUES_RESOLVED"
)

// transitions は許可された状態遷移の表です。
// AWAITING_IMAGEへの遷移（画像の再送信）はどの状態からでも許可します。
var transitions = map[State][]State{
	StateAwaitingImage:        {StateClassified, StateClassifiedOverridden},
	StateClassified:           {StateAwaitingConfirmation},
	StateAwaitingConfirmation: {StateClassifiedOverridden, StateAwaitingReflection},
	StateClassifiedOverridden: {StateClassifiedOverridden, StateAwaitingReflection},
	StateAwaitingReflection:   {StateProphesied},
	StateProphesied:           {StateVenuesResolved},
	StateVenuesResolved:       {},
}

// InvalidTransitionError は許可されていない状態遷移を表します。
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid session transition %s -> %s", e.From, e.To)
}

// CanTransition はfromからtoへの遷移が許可されているかを返します。
func CanTransition(from, to State) bool {
	if to == StateAwaitingImage {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session は1ユーザー分のパイプラインの中間結果を保持します。
type Session struct {
	ID             string                `json:"id"`
	State          State                 `json:"state"`
	ImageDigest    string                `json:"image_digest,omitempty"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	Label          string                `json:"label,omitempty"` // 後段に渡すラベル（分類結果または上書き）
	Questions      []string              `json:"questions,omitempty"`
	Reflections    []string              `json:"reflections,omitempty"`
	Prophecy       *Prophecy             `json:"prophecy,omitempty"`
	Venues         *VenueResult          `json:"venues,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewSession はAWAITING_IMAGE状態の新しいセッションを生成します。
func NewSession(id string, now time.Time) *Session {
	return &Session{ID: id, State: StateAwaitingImage, CreatedAt: now, UpdatedAt: now}
}

// Transition は状態をtoへ進めます。許可されていない場合は*InvalidTransitionErrorを返します。
func (s *Session) Transition(to State, now time.Time) error {
	if !CanTransition(s.State, to) {
		return &InvalidTransitionError{From: s.State, To: to}
	}
	if to == StateAwaitingImage {
		s.ImageDigest = ""
		s.Classification = nil
		s.Label = ""
		s.Questions = nil
		s.Reflections = nil
		s.Prophecy = nil
		s.Venues = nil
	}
	s.State = to
	s.UpdatedAt = now
	return nil
}

// Terminal はセッションが終端状態かを返します。
func (s *Session) Terminal() bool { return s.State == StateVenuesResolved }
