package entity

// UnknownLabel は分類に失敗した場合のセンチネルラベルです。
const UnknownLabel = "unknown"

// LabelScore は1ラベルに対する確率です。
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult は画像分類の結果を表します。
type ClassificationResult struct {
	Label      string       `json:"label"`      // 最も確からしいラベル（失敗時はUnknownLabel）
	Scores     []LabelScore `json:"scores"`     // 語彙順の確率分布（上書き・失敗時は空）
	Overridden bool         `json:"overridden"` // ユーザーがラベルを上書きしたか
	Failure    *Failure     `json:"failure,omitempty"`
}

// Failed は分類が失敗したかを返します。
func (r ClassificationResult) Failed() bool { return r.Failure != nil }
