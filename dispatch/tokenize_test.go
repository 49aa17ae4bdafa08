package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize_Whitespace(t *testing.T) {
	tokens, err := Tokenize("  show   interface\tstatus ")
	require.NoError(t, err)
	require.Equal(t, []string{"show", "interface", "status"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	tokens, err := Tokenize("   ")
	require.NoError(t, err)
	require.Empty(t, tokens)
}

func TestTokenize_Quotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"double", `set banner "hello world"`, []string{"set", "banner", "hello world"}},
		{"single", `set banner 'hello world'`, []string{"set", "banner", "hello world"}},
		{"adjacent", `set "a b"c`, []string{"set", "a bc"}},
		{"other quote inside", `say "it's fine"`, []string{"say", "it's fine"}},
		{"empty quoted", `set ""`, []string{"set", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, tokens)
		})
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	_, err := Tokenize(`set banner "oops`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated")
}

func TestSplitForCompletion(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		cursor   int
		complete []string
		partial  string
	}{
		{"empty", "", 0, nil, ""},
		{"single partial", "sh", 2, []string{}, "sh"},
		{"after space", "show ", 5, []string{"show"}, ""},
		{"mid second token", "show int", 8, []string{"show"}, "int"},
		{"cursor inside line", "show interface", 8, []string{"show"}, "int"},
		{"open quote", `ping "my host`, 13, []string{"ping"}, "my host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete, partial := SplitForCompletion(tt.line, tt.cursor)
			if len(tt.complete) == 0 {
				require.Empty(t, complete)
			} else {
				require.Equal(t, tt.complete, complete)
			}
			require.Equal(t, tt.partial, partial)
		})
	}
}

func TestPartialStart(t *testing.T) {
	require.Equal(t, 5, PartialStart("show int", 8))
	require.Equal(t, 5, PartialStart("show ", 5))
	require.Equal(t, 0, PartialStart("sh", 2))
}

func TestPartialStart_QuotedPartialIncludesQuote(t *testing.T) {
	// The offset points at the opening quote, so splicing a candidate
	// replaces the whole quoted partial instead of landing inside it.
	require.Equal(t, 5, PartialStart(`ping "my h`, 10))
	require.Equal(t, 4, PartialStart(`set "ab"`, 8))
	require.Equal(t, 4, PartialStart(`set 'a b'c`, 10))
}
