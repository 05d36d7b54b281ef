package entity

// DefaultFoodKeyword は語彙に一致する料理名が見つからなかった場合のセンチネルです。
const DefaultFoodKeyword = "lunch"

// Prophecy は言語モデルが生成したお告げと、そこから抽出した料理キーワードです。
type Prophecy struct {
	Narrative string   `json:"narrative"`
	Keyword   string   `json:"keyword"`
	Failure   *Failure `json:"failure,omitempty"`
}
