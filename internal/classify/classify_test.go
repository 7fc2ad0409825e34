package classify_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/shahar-caura/glutenguard/internal/classify"
	"github.com/shahar-caura/glutenguard/internal/phrases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	canonical = phrases.Default()
	gluten    = canonical.Gluten
	ambiguous = canonical.Ambiguous
)

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantStatus    classify.Status
		wantMatched   []string
		wantAmbiguous []string
	}{
		{
			name:        "wheat flour is unsafe",
			input:       "wheat flour, sugar, salt, yeast",
			wantStatus:  classify.StatusUnsafe,
			wantMatched: []string{"wheat", "wheat flour"},
		},
		{
			name:       "rice flour is safe",
			input:      "rice flour, vegetable oil, salt",
			wantStatus: classify.StatusSafe,
		},
		{
			name:          "natural flavoring is caution",
			input:         "water, soybeans, salt, natural flavoring",
			wantStatus:    classify.StatusCaution,
			wantAmbiguous: []string{"natural flavoring"},
		},
		{
			name:        "whole wheat and barley malt are unsafe",
			input:       "whole wheat, barley malt, sugar, vitamins",
			wantStatus:  classify.StatusUnsafe,
			wantMatched: []string{"whole wheat", "barley", "malt"},
		},
		{
			name:       "empty string is error",
			input:      "",
			wantStatus: classify.StatusError,
		},
		{
			name:       "whitespace only is error",
			input:      " \t\n ",
			wantStatus: classify.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := classify.Classify(tt.input, gluten, ambiguous)

			assert.Equal(t, tt.wantStatus, r.Status)
			for _, p := range tt.wantMatched {
				assert.Contains(t, r.MatchedPhrases, p)
			}
			for _, p := range tt.wantAmbiguous {
				assert.Contains(t, r.AmbiguousPhrases, p)
			}
			if tt.wantStatus == classify.StatusSafe || tt.wantStatus == classify.StatusError {
				assert.Empty(t, r.MatchedPhrases)
				assert.Empty(t, r.AmbiguousPhrases)
			}
		})
	}
}

func TestClassifyOptional_NilIsError(t *testing.T) {
	r := classify.ClassifyOptional(nil, gluten, ambiguous)

	assert.Equal(t, classify.StatusError, r.Status)
	assert.Equal(t, classify.MessageNoIngredients, r.Message)
	assert.NotNil(t, r.MatchedPhrases)
	assert.NotNil(t, r.AmbiguousPhrases)
}

func TestClassifyOptional_DelegatesForPresentInput(t *testing.T) {
	in := "Barley"
	r := classify.ClassifyOptional(&in, gluten, ambiguous)

	assert.Equal(t, classify.StatusUnsafe, r.Status)
	assert.Equal(t, []string{"barley"}, r.MatchedPhrases)
}

func TestClassify_MessagesFollowStatus(t *testing.T) {
	g := []string{"wheat"}
	a := []string{"malt"}

	assert.Equal(t, classify.MessageUnsafe, classify.Classify("wheat", g, a).Message)
	assert.Equal(t, classify.MessageCaution, classify.Classify("malt", g, a).Message)
	assert.Equal(t, classify.MessageSafe, classify.Classify("rice", g, a).Message)
	assert.Equal(t, classify.MessageNoIngredients, classify.Classify("", g, a).Message)
}

func TestClassify_UnsafeStillReportsAmbiguous(t *testing.T) {
	r := classify.Classify("Wheat flour, caramel color, natural flavor", gluten, ambiguous)

	require.Equal(t, classify.StatusUnsafe, r.Status)
	assert.Contains(t, r.MatchedPhrases, "wheat")
	assert.Contains(t, r.AmbiguousPhrases, "caramel color")
	assert.Contains(t, r.AmbiguousPhrases, "natural flavor")
}

func TestClassify_CautionHasNoMatches(t *testing.T) {
	r := classify.Classify("corn, yeast extract", []string{"wheat"}, []string{"yeast extract"})

	assert.Equal(t, classify.StatusCaution, r.Status)
	assert.Empty(t, r.MatchedPhrases)
	assert.Equal(t, []string{"yeast extract"}, r.AmbiguousPhrases)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	r := classify.Classify("ORGANIC WHOLE WHEAT", []string{"Whole Wheat"}, nil)

	assert.Equal(t, classify.StatusUnsafe, r.Status)
	assert.Equal(t, []string{"Whole Wheat"}, r.MatchedPhrases)
}

func TestClassify_SubstringOverMatching(t *testing.T) {
	tests := []struct {
		input string
	}{
		{input: "goat cheese"},
		{input: "floating island"},
		{input: "oatmeal"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := classify.Classify(tt.input, []string{"oat"}, nil)
			assert.Equal(t, classify.StatusUnsafe, r.Status)
			assert.Equal(t, []string{"oat"}, r.MatchedPhrases)
		})
	}

	// The canonical list keeps the same behaviour.
	r := classify.Classify("goat cheese", gluten, ambiguous)
	assert.Equal(t, classify.StatusUnsafe, r.Status)
	assert.Contains(t, r.MatchedPhrases, "oat")
}

func TestClassify_OutputFollowsReferenceOrder(t *testing.T) {
	g := []string{"rye", "barley", "wheat"}

	r := classify.Classify("wheat, barley, rye", g, nil)
	assert.Equal(t, []string{"rye", "barley", "wheat"}, r.MatchedPhrases)

	reversed := []string{"wheat", "barley", "rye"}
	r2 := classify.Classify("wheat, barley, rye", reversed, nil)
	assert.Equal(t, reversed, r2.MatchedPhrases)
	assert.Equal(t, r.Status, r2.Status)
}

func TestClassify_PermutedListsKeepStatus(t *testing.T) {
	inputs := []string{
		"wheat flour, sugar, salt, yeast",
		"rice flour, vegetable oil, salt",
		"water, soybeans, salt, natural flavoring",
		"",
	}
	revGluten := reverse(gluten)
	revAmbiguous := reverse(ambiguous)

	for _, in := range inputs {
		a := classify.Classify(in, gluten, ambiguous)
		b := classify.Classify(in, revGluten, revAmbiguous)
		assert.Equal(t, a.Status, b.Status, in)
		assert.ElementsMatch(t, a.MatchedPhrases, b.MatchedPhrases, in)
		assert.ElementsMatch(t, a.AmbiguousPhrases, b.AmbiguousPhrases, in)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	in := "whole wheat, barley malt, sugar, vitamins, caramel color"

	first := classify.Classify(in, gluten, ambiguous)
	second := classify.Classify(in, gluten, ambiguous)

	assert.Equal(t, first, second)
}

func TestClassify_ResultDoesNotAliasLists(t *testing.T) {
	g := []string{"wheat"}
	r := classify.Classify("wheat", g, nil)
	r.MatchedPhrases[0] = "mutated"

	assert.Equal(t, "wheat", g[0])
}

func TestClassify_EmptyListsAreSafe(t *testing.T) {
	r := classify.Classify("wheat flour", nil, nil)
	assert.Equal(t, classify.StatusSafe, r.Status)
}

func TestClassify_NonsenseInputIsClassified(t *testing.T) {
	r := classify.Classify("12345 !!! zzz", gluten, ambiguous)
	assert.Equal(t, classify.StatusSafe, r.Status)

	long := strings.Repeat("rice, ", 10000) + "spelt"
	r = classify.Classify(long, gluten, ambiguous)
	assert.Equal(t, classify.StatusUnsafe, r.Status)
	assert.Equal(t, []string{"spelt"}, r.MatchedPhrases)
}

func TestClassify_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]classify.Result, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = classify.Classify("whole wheat, natural flavor", gluten, ambiguous)
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestLists_Classify(t *testing.T) {
	l := classify.Lists{Gluten: []string{"rye"}, Ambiguous: []string{"stock"}}

	assert.Equal(t, classify.StatusUnsafe, l.Classify("rye bread").Status)
	assert.Equal(t, classify.StatusCaution, l.Classify("chicken stock").Status)
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []classify.Status{classify.StatusError, classify.StatusSafe, classify.StatusCaution, classify.StatusUnsafe} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, classify.Status("maybe").Valid())
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
