package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	t.Parallel()

	ex, err := usecase.NewKeywordExtractor([]string{"ramen", "sushi", "soup", "pho", "rice", "fried rice", "Salad", "salad "})
	require.NoError(t, err)

	tests := []struct {
		name      string
		narrative string
		expected  string
	}{
		{name: "first match in document order wins", narrative: "Seek the ramen of truth, not the sushi of doubt.", expected: "ramen"},
		{name: "order is positional not dictionary order", narrative: "Sushi first, then ramen.", expected: "sushi"},
		{name: "case insensitive", narrative: "A warm SOUP awaits.", expected: "soup"},
		{name: "word boundary excludes substrings", narrative: "The phone rings; eat soup.", expected: "soup"},
		{name: "underscore is part of a word", narrative: "soup_du_jour is not it, but pho is", expected: "pho"},
		{name: "longer entry preferred at same position", narrative: "Fried rice, of course.", expected: "fried rice"},
		{name: "punctuation boundaries", narrative: "(salad!)", expected: "salad"},
		{name: "no match returns sentinel", narrative: "The stars are silent today.", expected: entity.DefaultFoodKeyword},
		{name: "empty narrative returns sentinel", narrative: "", expected: entity.DefaultFoodKeyword},
		{name: "non ascii neighbours", narrative: "café-ramen", expected: "ramen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ex.Extract(tt.narrative))
		})
	}
}

func TestKeywordExtractor_ResultIsAlwaysInDictionaryOrSentinel(t *testing.T) {
	t.Parallel()

	dict := []string{"ramen", "taco", "dim sum"}
	ex, err := usecase.NewKeywordExtractor(dict)
	require.NoError(t, err)

	inputs := []string{
		"", "taco", "tacos", "dim sum please", "DIM  SUM", "ramen-taco", "\x00\xff", "🍜 ramen 🍜", "R A M E N",
	}
	allowed := map[string]bool{"ramen": true, "taco": true, "dim sum": true, entity.DefaultFoodKeyword: true}
	for _, in := range inputs {
		got := ex.Extract(in)
		assert.Truef(t, allowed[got], "unexpected keyword %q for input %q", got, in)
	}
}

func TestKeywordExtractor_Dictionary(t *testing.T) {
	t.Parallel()

	ex, err := usecase.NewKeywordExtractor([]string{" Ramen ", "ramen", "", "Pho"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ramen", "pho"}, ex.Dictionary())

	empty, err := usecase.NewKeywordExtractor(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultFoodKeyword, empty.Extract("ramen"))
}
