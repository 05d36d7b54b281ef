package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
	"lunch_oracle/internal/shared/resilience"
)

func TestVenueUsecase_Query(t *testing.T) {
	t.Parallel()

	uc := usecase.NewVenueUsecase(&mockVenueSearcher{}, usecase.VenueConfig{Qualifier: usecase.DefaultQualifier}, resilience.Policy{})

	q := uc.Query("soup")
	assert.Equal(t, "soup restaurant", q.Term)
	assert.Equal(t, usecase.DefaultLocation, q.Location)
	assert.Equal(t, usecase.DefaultVenueLimit, q.Limit)
	assert.Equal(t, []int{1, 2}, q.PriceTiers)

	assert.Equal(t, "lunch restaurant", uc.Query("  ").Term)
}

func TestVenueUsecase_FindVenues(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name              string
		mockFunc          func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error)
		expectedNames     []string
		expectedFailure   bool
		expectedPlacehold bool
	}{
		{
			name: "success: order preserved and capped at limit",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return []entity.Venue{
					{Name: "A", Address: "1 Main St", PriceTier: "$"},
					{Name: "B", Address: "2 Main St", PriceTier: "$$"},
					{Name: "C", Address: "3 Main St"},
					{Name: "D", Address: "4 Main St", PriceTier: "$"},
				}, nil
			},
			expectedNames: []string{"A", "B", "C"},
		},
		{
			name: "success: records outside the price filter or without a name are dropped",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return []entity.Venue{
					{Name: "Fancy", Address: "9 Main St", PriceTier: "$$$$"},
					{Name: "  ", Address: "8 Main St"},
					{Name: "Cheap", Address: "7 Main St", PriceTier: "$"},
				}, nil
			},
			expectedNames: []string{"Cheap"},
		},
		{
			name: "success: cap applies after filtering",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return []entity.Venue{
					{Name: "Pricey", Address: "0 Main St", PriceTier: "$$$"},
					{Name: "A", Address: "1 Main St", PriceTier: "$"},
					{Name: "Nowhere"},
					{Name: "B", Address: "2 Main St"},
					{Name: "C", Address: "3 Main St", PriceTier: "$$"},
				}, nil
			},
			expectedNames: []string{"A", "B", "C"},
		},
		{
			name: "success: records without an address are dropped",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return []entity.Venue{
					{Name: "Food Truck", PriceTier: "$"},
					{Name: "Cart", Address: "   "},
					{Name: "Soup Stand", Address: "Kendall Sq, Cambridge, MA", PriceTier: "$"},
				}, nil
			},
			expectedNames: []string{"Soup Stand"},
		},
		{
			name: "only address-less records: single placeholder",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return []entity.Venue{{Name: "Food Truck", PriceTier: "$"}}, nil
			},
			expectedNames:     []string{usecase.NoVenuesMessage},
			expectedPlacehold: true,
		},
		{
			name: "zero results: single placeholder",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return nil, nil
			},
			expectedNames:     []string{usecase.NoVenuesMessage},
			expectedPlacehold: true,
		},
		{
			name: "error: single placeholder with failure",
			mockFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
				return nil, ErrAPI
			},
			expectedNames:     []string{"Error fetching lunch spots: venue searcher failed: api error"},
			expectedFailure:   true,
			expectedPlacehold: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &mockVenueSearcher{SearchFunc: tc.mockFunc}
			uc := usecase.NewVenueUsecase(searcher, usecase.VenueConfig{Qualifier: usecase.DefaultQualifier}, resilience.Policy{})

			res := uc.FindVenues(ctx, "soup")

			require.NotEmpty(t, res.Venues)
			assert.LessOrEqual(t, len(res.Venues), usecase.DefaultVenueLimit)
			names := make([]string, 0, len(res.Venues))
			for _, v := range res.Venues {
				names = append(names, v.Name)
				assert.Equal(t, tc.expectedPlacehold, v.Placeholder)
				if !v.Placeholder {
					assert.NotEmpty(t, v.Address, "venue %q has no address", v.Name)
				}
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, 1, searcher.SearchCalls)
			if tc.expectedFailure {
				require.NotNil(t, res.Failure)
				assert.Equal(t, entity.SearchFailure, res.Failure.Kind)
				assert.ErrorIs(t, res.Failure, ErrAPI)
			} else {
				assert.Nil(t, res.Failure)
			}
		})
	}
}

func TestVenueUsecase_FindVenues_PassesQuery(t *testing.T) {
	var got usecase.VenueQuery
	searcher := &mockVenueSearcher{SearchFunc: func(ctx context.Context, q usecase.VenueQuery) ([]entity.Venue, error) {
		got = q
		return []entity.Venue{{Name: "Noodle Bar", Address: "1 Broadway", PriceTier: "$"}}, nil
	}}
	uc := usecase.NewVenueUsecase(searcher, usecase.VenueConfig{
		Location:   "Kendall Square, Cambridge, MA",
		Qualifier:  "restaurant",
		Limit:      5,
		PriceTiers: []int{1},
	}, resilience.Policy{})

	res := uc.FindVenues(context.Background(), "ramen")

	assert.Equal(t, "ramen restaurant", got.Term)
	assert.Equal(t, "Kendall Square, Cambridge, MA", got.Location)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, []int{1}, got.PriceTiers)
	assert.True(t, strings.HasPrefix(res.Venues[0].Name, "Noodle"))
}
