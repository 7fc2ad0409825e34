package classify

import "strings"

// Status is the four-valued outcome of classifying one ingredient string.
type Status string

const (
	StatusError   Status = "error"
	StatusSafe    Status = "safe"
	StatusCaution Status = "caution"
	StatusUnsafe  Status = "unsafe"
)

// Messages shown alongside each status.
const (
	MessageNoIngredients = "No ingredients provided"
	MessageUnsafe        = "Contains known gluten ingredients"
	MessageCaution       = "May contain hidden gluten sources"
	MessageSafe          = "No gluten ingredients found"
)

// Result is the outcome of a single classification. It shares no memory with
// the phrase lists it was computed from.
type Result struct {
	Status           Status   `json:"status" yaml:"status"`
	Message          string   `json:"message" yaml:"message"`
	MatchedPhrases   []string `json:"matched_phrases" yaml:"matched_phrases"`
	AmbiguousPhrases []string `json:"ambiguous_phrases" yaml:"ambiguous_phrases"`
}

// Lists pairs the confirmed and ambiguous phrase lists.
type Lists struct {
	Gluten    []string
	Ambiguous []string
}

// Classify runs Classify against l.
func (l Lists) Classify(input string) Result {
	return Classify(input, l.Gluten, l.Ambiguous)
}

// Classify reports whether input contains gluten phrases (unsafe), only
// ambiguous phrases (caution) or neither (safe). Empty or whitespace-only
// input yields StatusError.
//
// Phrases match as case-insensitive substrings of the whole input, so "oat"
// matches inside "goat cheese". Matches are returned in reference-list order.
func Classify(input string, glutenPhrases, ambiguousPhrases []string) Result {
	if strings.TrimSpace(input) == "" {
		return errorResult()
	}

	text := strings.ToLower(input)
	matched := matchPhrases(text, glutenPhrases)
	ambiguous := matchPhrases(text, ambiguousPhrases)

	switch {
	case len(matched) > 0:
		return Result{
			Status:           StatusUnsafe,
			Message:          MessageUnsafe,
			MatchedPhrases:   matched,
			AmbiguousPhrases: ambiguous,
		}
	case len(ambiguous) > 0:
		return Result{
			Status:           StatusCaution,
			Message:          MessageCaution,
			MatchedPhrases:   []string{},
			AmbiguousPhrases: ambiguous,
		}
	default:
		return Result{
			Status:           StatusSafe,
			Message:          MessageSafe,
			MatchedPhrases:   []string{},
			AmbiguousPhrases: []string{},
		}
	}
}

// ClassifyOptional is Classify for callers whose ingredient text may be
// absent altogether. A nil input yields StatusError.
func ClassifyOptional(input *string, glutenPhrases, ambiguousPhrases []string) Result {
	if input == nil {
		return errorResult()
	}
	return Classify(*input, glutenPhrases, ambiguousPhrases)
}

func errorResult() Result {
	return Result{
		Status:           StatusError,
		Message:          MessageNoIngredients,
		MatchedPhrases:   []string{},
		AmbiguousPhrases: []string{},
	}
}

// matchPhrases returns the phrases occurring in text, in phrase order.
// text must already be lowercased.
func matchPhrases(text string, phrases []string) []string {
	out := []string{}
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(p)) {
			out = append(out, p)
		}
	}
	return out
}

// Valid reports whether s is one of the four statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusError, StatusSafe, StatusCaution, StatusUnsafe:
		return true
	}
	return false
}
