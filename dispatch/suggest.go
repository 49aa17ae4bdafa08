package dispatch

import "github.com/sahilm/fuzzy"

const maxSuggestions = 3

// SuggestSimilar ranks names against a mistyped token and returns up to
// three did-you-mean candidates, best match first. These accompany NotFound
// results so the driver can point at likely intentions.
func SuggestSimilar(input string, names []string) []string {
	if input == "" || len(names) == 0 {
		return nil
	}

	matches := fuzzy.Find(input, names)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
