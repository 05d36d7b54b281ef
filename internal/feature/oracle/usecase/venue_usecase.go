package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/shared/resilience"
)

const (
	// NoVenuesMessage は検索結果が0件だった場合のプレースホルダです。
	NoVenuesMessage = "No affordable lunch spots found nearby. The Oracle is uncertain..."
	// searchErrorPrefix は検索失敗時のプレースホルダの接頭辞です。
	searchErrorPrefix = "Error fetching lunch spots: "
)

// VenueConfig は店舗検索の固定パラメータです。
type VenueConfig struct {
	Location   string
	Qualifier  string
	Limit      int
	PriceTiers []int
}

// VenueUsecase は料理キーワードから近隣の手頃な店舗を検索します。
type VenueUsecase struct {
	searcher VenueSearcher
	cfg      VenueConfig
	policy   resilience.Policy
}

// NewVenueUsecase はVenueUsecaseの新しいインスタンスを生成します。
// Limitが0以下の場合はDefaultVenueLimit、PriceTiersが空の場合はDefaultPriceTiersを使います。
func NewVenueUsecase(searcher VenueSearcher, cfg VenueConfig, policy resilience.Policy) *VenueUsecase {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultVenueLimit
	}
	if len(cfg.PriceTiers) == 0 {
		cfg.PriceTiers = DefaultPriceTiers
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	return &VenueUsecase{searcher: searcher, cfg: cfg, policy: policy}
}

// Query はキーワードから検索クエリを組み立てます。
func (u *VenueUsecase) Query(keyword string) VenueQuery {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = entity.DefaultFoodKeyword
	}
	term := strings.TrimSpace(keyword + " " + u.cfg.Qualifier)
	tiers := make([]int, len(u.cfg.PriceTiers))
	copy(tiers, u.cfg.PriceTiers)
	return VenueQuery{Term: term, Location: u.cfg.Location, Limit: u.cfg.Limit, PriceTiers: tiers}
}

// FindVenues は店舗を検索します。結果は空にならず、0件または失敗時は1件のプレースホルダを返します。
func (u *VenueUsecase) FindVenues(ctx context.Context, keyword string) entity.VenueResult {
	q := u.Query(keyword)

	var found []entity.Venue
	err := u.policy.Run(ctx, func(ctx context.Context) error {
		var err error
		found, err = u.searcher.Search(ctx, q)
		return err
	})
	if err != nil {
		err = fmt.Errorf("venue searcher failed: %w", err)
		slog.Warn("venue search failed", "term", q.Term, "error", err)
		return entity.VenueResult{
			Venues:  []entity.Venue{{Name: searchErrorPrefix + err.Error(), Placeholder: true}},
			Failure: entity.NewFailure(entity.SearchFailure, err),
		}
	}

	venues := u.filter(found)
	if len(venues) == 0 {
		return entity.VenueResult{Venues: []entity.Venue{{Name: NoVenuesMessage, Placeholder: true}}}
	}
	return entity.VenueResult{Venues: venues}
}

// filter は名前または住所のない店舗と価格帯外の店舗を除き、上限件数に切り詰めます。順序は維持します。
func (u *VenueUsecase) filter(in []entity.Venue) []entity.Venue {
	allowed := make(map[string]struct{}, len(u.cfg.PriceTiers))
	for _, t := range u.cfg.PriceTiers {
		allowed[entity.PriceTierLabel(t)] = struct{}{}
	}

	out := make([]entity.Venue, 0, u.cfg.Limit)
	for _, v := range in {
		if len(out) == u.cfg.Limit {
			break
		}
		if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Address) == "" {
			continue
		}
		if v.PriceTier != "" {
			if _, ok := allowed[v.PriceTier]; !ok {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
