package dispatch

import (
	"unicode"

	"github.com/promptr-tools/promptr/shellerr"
)

// Tokenize splits a line on runs of whitespace, preserving substrings quoted
// with ' or " as single tokens. Quotes do not nest. An unterminated quote is
// a MalformedInput error.
func Tokenize(line string) ([]string, error) {
	tokens, _, open, _ := scan(line)
	if open != 0 {
		return nil, shellerr.MalformedInput("unterminated quote")
	}
	return tokens, nil
}

// SplitForCompletion splits the text left of the cursor into the fully typed
// tokens and the trailing partial token under the cursor. A cursor sitting
// right after whitespace starts a fresh, empty partial. An open quote is
// tolerated: its content becomes the partial so completion inside quotes
// degrades gracefully instead of erroring.
func SplitForCompletion(line string, cursor int) (complete []string, partial string) {
	if cursor > len(line) {
		cursor = len(line)
	}
	if cursor < 0 {
		cursor = 0
	}
	text := line[:cursor]

	tokens, trailing, _, _ := scan(text)
	if trailing {
		return tokens, ""
	}
	if len(tokens) == 0 {
		return nil, ""
	}
	return tokens[:len(tokens)-1], tokens[len(tokens)-1]
}

// PartialStart returns the byte offset where the partial token under the
// cursor begins, opening quote included, so callers can splice an accepted
// completion candidate over the whole partial.
func PartialStart(line string, cursor int) int {
	if cursor > len(line) {
		cursor = len(line)
	}
	if cursor < 0 {
		cursor = 0
	}

	_, trailing, _, start := scan(line[:cursor])
	if trailing {
		// The cursor starts a fresh, empty partial.
		return cursor
	}
	return start
}

// scan is the shared tokenizer core. trailing reports whether the text ends
// on whitespace (outside quotes); open holds the unclosed quote rune, if
// any; lastStart is the byte offset the last token began at, including its
// opening quote.
func scan(text string) (tokens []string, trailing bool, open rune, lastStart int) {
	var current []rune
	inToken := false

	flush := func() {
		if inToken {
			tokens = append(tokens, string(current))
			current = current[:0]
			inToken = false
		}
	}

	for i, r := range text {
		switch {
		case open != 0:
			if r == open {
				open = 0
			} else {
				current = append(current, r)
			}
		case r == '\'' || r == '"':
			if !inToken {
				lastStart = i
			}
			open = r
			inToken = true
		case unicode.IsSpace(r):
			flush()
		default:
			if !inToken {
				lastStart = i
			}
			current = append(current, r)
			inToken = true
		}
	}

	trailing = !inToken && open == 0
	flush()
	return tokens, trailing, open, lastStart
}
