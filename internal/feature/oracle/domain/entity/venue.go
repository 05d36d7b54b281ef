package entity

// Venue は検索プロバイダから返された店舗を正規化したものです。
type Venue struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PriceTier   string `json:"price_tier,omitempty"` // "$"〜"$$$$"、不明な場合は空
	Category    string `json:"category,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"` // 結果なし・エラー時のプレースホルダか
}

// VenueResult は店舗検索の結果です。空になることはありません。
type VenueResult struct {
	Venues  []Venue  `json:"venues"`
	Failure *Failure `json:"failure,omitempty"`
}

// PriceTierLabel は1〜4の価格帯を"$"表記に変換します。範囲外は空文字を返します。
func PriceTierLabel(tier int) string {
	if tier < 1 || tier > 4 {
		return ""
	}
	return "$$$$"[:tier]
}
