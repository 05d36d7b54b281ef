package handler

import (
	"fmt"

	"lunch_oracle/internal/api"
	"lunch_oracle/internal/feature/oracle/domain/entity"
)

// toSessionResponse はセッションをレスポンスに変換します。
func toSessionResponse(s *entity.Session) api.SessionResponse {
	out := api.SessionResponse{
		ID:          s.ID,
		State:       string(s.State),
		Label:       s.Label,
		Questions:   s.Questions,
		Reflections: s.Reflections,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if c := s.Classification; c != nil {
		cr := &api.ClassificationResponse{Label: c.Label, Overridden: c.Overridden}
		for _, sc := range c.Scores {
			cr.Scores = append(cr.Scores, api.LabelScoreDTO{Label: sc.Label, Score: sc.Score})
		}
		out.Classification = cr
		out.Failures = appendFailure(out.Failures, c.Failure)
	}
	if p := s.Prophecy; p != nil {
		out.Prophecy = &api.ProphecyResponse{Narrative: p.Narrative, Keyword: p.Keyword}
		out.Failures = appendFailure(out.Failures, p.Failure)
	}
	if v := s.Venues; v != nil {
		for _, venue := range v.Venues {
			out.Venues = append(out.Venues, api.VenueResponse{
				Name:        venue.Name,
				Address:     venue.Address,
				PriceTier:   venue.PriceTier,
				Category:    venue.Category,
				Placeholder: venue.Placeholder,
				Display:     FormatVenue(venue),
			})
		}
		out.Failures = appendFailure(out.Failures, v.Failure)
	}
	return out
}

func appendFailure(fs []api.FailureResponse, f *entity.Failure) []api.FailureResponse {
	if f == nil {
		return fs
	}
	return append(fs, api.FailureResponse{Kind: string(f.Kind), Message: f.Message})
}

// FormatVenue は店舗を"name - address (Price: $)"の形式で表示します。
// プレースホルダはメッセージのみ、不明な項目は省略します。
func FormatVenue(v entity.Venue) string {
	if v.Placeholder {
		return v.Name
	}
	s := v.Name
	if v.Address != "" {
		s += " - " + v.Address
	}
	if v.PriceTier != "" {
		s += fmt.Sprintf(" (Price: %s)", v.PriceTier)
	}
	return s
}
