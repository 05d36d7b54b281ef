package places

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
	"lunch_oracle/internal/platform/externalapi/places/dto"
)

// PlacesSearcher はGoogle Places Text Searchで店舗を検索するVenueSearcher実装です。
type PlacesSearcher struct {
	cfg    Config
	client *http.Client
}

// PlacesSearcherがVenueSearcherを実装していることをコンパイル時に検証します。
var _ usecase.VenueSearcher = (*PlacesSearcher)(nil)

// NewPlacesSearcher は指定された設定とHTTPクライアントでPlacesSearcherの新しいインスタンスを生成します。
func NewPlacesSearcher(cfg Config, client *http.Client) *PlacesSearcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &PlacesSearcher{cfg: cfg, client: client}
}

// Search はText Searchを呼び出し、結果をすべて返します。APIに件数指定がないため、件数の上限は呼び出し側で適用します。
func (p *PlacesSearcher) Search(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
	v := url.Values{}
	v.Set("query", strings.TrimSpace(q.Term+" near "+q.Location))
	v.Set("type", "restaurant")
	if lo, hi, ok := priceRange(q.PriceTiers); ok {
		v.Set("minprice", strconv.Itoa(lo))
		v.Set("maxprice", strconv.Itoa(hi))
	}
	v.Set("key", p.cfg.APIKey)

	u := fmt.Sprintf("%s/maps/api/place/textsearch/json?%s", strings.TrimRight(p.cfg.BaseURL, "/"), v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("places http %d", res.StatusCode)
	}

	var body dto.TextSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}
	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		if body.ErrorMessage != "" {
			return nil, fmt.Errorf("places: %s: %s", body.Status, body.ErrorMessage)
		}
		return nil, fmt.Errorf("places: %s", body.Status)
	}

	venues := make([]entity.Venue, 0, len(body.Results))
	for _, r := range body.Results {
		var tier string
		if r.PriceLevel != nil {
			tier = priceTier(*r.PriceLevel)
		}
		venues = append(venues, entity.Venue{
			Name:      r.Name,
			Address:   r.FormattedAddress,
			PriceTier: tier,
			Category:  category(r.Types),
		})
	}
	return venues, nil
}

// priceTier はPlacesのprice_levelを"$"表記に変換します。0(無料)は最安の"$"として扱います。
func priceTier(level int) string {
	if level == 0 {
		return entity.PriceTierLabel(1)
	}
	return entity.PriceTierLabel(level)
}

// priceRange は価格帯の最小値と最大値を返します。Placesの価格帯は0〜4です。
func priceRange(tiers []int) (lo, hi int, ok bool) {
	for _, t := range tiers {
		if t < 0 || t > 4 {
			continue
		}
		if !ok {
			lo, hi, ok = t, t, true
			continue
		}
		lo = min(lo, t)
		hi = max(hi, t)
	}
	return lo, hi, ok
}

// category は汎用的でない最初のtypeを人が読める形で返します。
func category(types []string) string {
	for _, t := range types {
		switch t {
		case "point_of_interest", "establishment", "food":
			continue
		}
		return strings.ReplaceAll(t, "_", " ")
	}
	return ""
}
