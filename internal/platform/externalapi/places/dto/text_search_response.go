package dto

// TextSearchResponse は /maps/api/place/textsearch/json のレスポンスです。
type TextSearchResponse struct {
	Status       string   `json:"status"` // "OK", "ZERO_RESULTS", "REQUEST_DENIED" など
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []Result `json:"results"`
}

// Result は検索結果の1件です。
type Result struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	PriceLevel       *int     `json:"price_level,omitempty"` // 0〜4、未設定の場合あり
	Types            []string `json:"types"`
}
