package dto

// BusinessSearchResponse は /v3/businesses/search のレスポンスです。
type BusinessSearchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
	Error      *APIError  `json:"error,omitempty"`
}

// Business は検索結果の1店舗です。
type Business struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Price      string     `json:"price"` // "$"〜"$$$$"、未設定の場合あり
	Location   Location   `json:"location"`
	Categories []Category `json:"categories"`
}

// Location は店舗の所在地です。
type Location struct {
	Address1       string   `json:"address1"` // nullの場合あり
	City           string   `json:"city"`
	DisplayAddress []string `json:"display_address"`
}

// Category は店舗のカテゴリです。
type Category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// APIError はエラーレスポンスの本文です。
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
