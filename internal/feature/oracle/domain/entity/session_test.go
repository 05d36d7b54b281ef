package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunch_oracle/internal/feature/oracle/domain/entity"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from, to entity.State
		allowed  bool
	}{
		{entity.StateAwaitingImage, entity.StateClassified, true},
		{entity.StateAwaitingImage, entity.StateClassifiedOverridden, true},
		{entity.StateClassified, entity.StateAwaitingConfirmation, true},
		{entity.StateAwaitingConfirmation, entity.StateClassifiedOverridden, true},
		{entity.StateAwaitingConfirmation, entity.StateAwaitingReflection, true},
		{entity.StateClassifiedOverridden, entity.StateClassifiedOverridden, true},
		{entity.StateClassifiedOverridden, entity.StateAwaitingReflection, true},
		{entity.StateAwaitingReflection, entity.StateProphesied, true},
		{entity.StateProphesied, entity.StateVenuesResolved, true},
		{entity.StateVenuesResolved, entity.StateAwaitingImage, true},
		{entity.StateProphesied, entity.StateAwaitingImage, true},
		{entity.StateAwaitingImage, entity.StateProphesied, false},
		{entity.StateAwaitingConfirmation, entity.StateProphesied, false},
		{entity.StateAwaitingReflection, entity.StateClassifiedOverridden, false},
		{entity.StateVenuesResolved, entity.StateProphesied, false},
		{entity.StateClassified, entity.StateAwaitingReflection, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.allowed, entity.CanTransition(tc.from, tc.to))
		})
	}
}

func TestSession_Transition(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := entity.NewSession("abc", t0)
	assert.Equal(t, entity.StateAwaitingImage, s.State)

	err := s.Transition(entity.StateVenuesResolved, t0)
	var ite *entity.InvalidTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, entity.StateAwaitingImage, ite.From)
	assert.Equal(t, entity.StateVenuesResolved, ite.To)
	assert.Equal(t, entity.StateAwaitingImage, s.State, "state must not change on rejected transition")

	require.NoError(t, s.Transition(entity.StateClassifiedOverridden, t0.Add(time.Minute)))
	s.Label = "a mug"
	s.Reflections = []string{"cozy"}
	s.Prophecy = &entity.Prophecy{Narrative: "soup", Keyword: "soup"}
	assert.Equal(t, t0.Add(time.Minute), s.UpdatedAt)
	assert.False(t, s.Terminal())

	require.NoError(t, s.Transition(entity.StateAwaitingImage, t0.Add(2*time.Minute)))
	assert.Empty(t, s.Label)
	assert.Nil(t, s.Reflections)
	assert.Nil(t, s.Prophecy)
	assert.Equal(t, t0, s.CreatedAt)
}

func TestPriceTierLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$", entity.PriceTierLabel(1))
	assert.Equal(t, "$$$$", entity.PriceTierLabel(4))
	assert.Equal(t, "", entity.PriceTierLabel(0))
	assert.Equal(t, "", entity.PriceTierLabel(5))
}
