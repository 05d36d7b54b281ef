package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/platform/externalapi/yelp/dto"
)

// YelpSearcher はYelp Fusion APIで店舗を検索するVenueSearcher実装です。
type YelpSearcher struct {
	cfg    Config
	client *http.Client
}

// YelpSearcherがVenueSearcherを実装していることをコンパイル時に検証します。
var _ usecase.VenueSearcher = (*YelpSearcher)(nil)

// NewYelpSearcher は指定された設定とHTTPクライアントでYelpSearcherの新しいインスタンスを生成します。
func NewYelpSearcher(cfg Config, client *http.Client) *YelpSearcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &YelpSearcher{cfg: cfg, client: client}
}

// Search は /v3/businesses/search を呼び出し、結果をプロバイダの並び順のまま返します。
func (y *YelpSearcher) Search(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
	v := url.Values{}
	v.Set("term", q.Term)
	v.Set("location", q.Location)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(q.PriceTiers) > 0 {
		tiers := make([]string, len(q.PriceTiers))
		for i, t := range q.PriceTiers {
			tiers[i] = strconv.Itoa(t)
		}
		v.Set("price", strings.Join(tiers, ","))
	}

	u := fmt.Sprintf("%s/v3/businesses/search?%s", strings.TrimRight(y.cfg.BaseURL, "/"), v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+y.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body dto.BusinessSearchResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	if res.StatusCode >= 400 {
		if decodeErr == nil && body.Error != nil {
			return nil, fmt.Errorf("yelp http %d: %s: %s", res.StatusCode, body.Error.Code, body.Error.Description)
		}
		return nil, fmt.Errorf("yelp http %d", res.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode yelp response: %w", decodeErr)
	}

	venues := make([]entity.Venue, 0, len(body.Businesses))
	for _, b := range body.Businesses {
		var category string
		if len(b.Categories) > 0 {
			category = b.Categories[0].Title
		}
		venues = append(venues, entity.Venue{
			Name:      b.Name,
			Address:   address(b.Location),
			PriceTier: b.Price,
			Category:  category,
		})
	}
	return venues, nil
}

// address はaddress1を優先し、空の場合はdisplay_addressを連結した住所を返します。
func address(loc dto.Location) string {
	if a := strings.TrimSpace(loc.Address1); a != "" {
		return a
	}
	parts := make([]string, 0, len(loc.DisplayAddress))
	for _, p := range loc.DisplayAddress {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
