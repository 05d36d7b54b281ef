package entity

// FailureKind は外部呼び出しの失敗分類です。
type FailureKind string

const (
	// ClassificationFailure は画像のデコードまたは推論の失敗です。
	ClassificationFailure FailureKind = "classification_failure"
	// GenerationFailure はテキスト生成プロバイダのエラーまたはクォータ超過です。
	GenerationFailure FailureKind = "generation_failure"
	// SearchFailure は店舗検索プロバイダのエラーです。
	SearchFailure FailureKind = "search_failure"
)

// Failure はコンポーネント境界で捕捉された失敗です。
// 結果型に載せて返し、原因はログ用に保持します。
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Cause   error       `json:"-"`
}

// NewFailure はFailureを生成します。Messageは原因のエラーメッセージです。
func NewFailure(kind FailureKind, cause error) *Failure {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Failure{Kind: kind, Message: msg, Cause: cause}
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

func (f *Failure) Unwrap() error { return f.Cause }
