package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestSimilar(t *testing.T) {
	names := []string{"show", "shutdown", "configure", "ping"}

	got := SuggestSimilar("shw", names)
	require.Contains(t, got, "show")

	got = SuggestSimilar("cfg", names)
	require.Contains(t, got, "configure")
}

func TestSuggestSimilar_CapsResults(t *testing.T) {
	names := []string{"aaa", "aab", "aac", "aad", "aae"}

	got := SuggestSimilar("aa", names)
	require.LessOrEqual(t, len(got), 3)
}

func TestSuggestSimilar_Empty(t *testing.T) {
	require.Nil(t, SuggestSimilar("", []string{"show"}))
	require.Nil(t, SuggestSimilar("show", nil))
	require.Empty(t, SuggestSimilar("zzz", []string{"ping"}))
}
