package passage

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenKind classifies a token for rendering.
type TokenKind int

const (
	KindWord TokenKind = iota
	KindSpecial
	KindWhitespace
)

func (k TokenKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindSpecial:
		return "special"
	case KindWhitespace:
		return "whitespace"
	}
	return "unknown"
}

func (k TokenKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TokenKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "word":
		*k = KindWord
	case "special":
		*k = KindSpecial
	case "whitespace":
		*k = KindWhitespace
	default:
		return fmt.Errorf("unknown token kind %q", string(b))
	}
	return nil
}

// Token is one atomic unit of a tokenized passage. Tokens are immutable once
// produced; the whole sequence is regenerated when the passage text changes.
// SpaceAfter records that a single space followed this token in the source,
// so a run of tokens can be joined back into display text without losing
// word boundaries.
type Token struct {
	Index      int       `json:"index"`
	Text       string    `json:"text"`
	Kind       TokenKind `json:"kind"`
	SpaceAfter bool      `json:"spaceAfter,omitempty"`
}

// tokenPattern splits a passage into whitespace runs, maximal runs of word
// characters (Hangul syllables/jamo plus Latin letters and digits), and
// individual punctuation/symbol characters. Symbols match one at a time so
// each gets its own token.
var tokenPattern = regexp.MustCompile("\\s+" +
	"|[ㄱ-ㅎ|ㅏ-ㅣ|가-힣A-Za-z0-9]+" +
	"|[.,?!'\"“”°•*é²ʼü/ćíèáöà#☆·=Śê×‐£´③çó º①②④äθ→⑤{}³́/_~@#$%&*()=+`’–―—:;-]")

var specialPattern = regexp.MustCompile(`[^ㄱ-ㅎ|ㅏ-ㅣ|가-힣a-zA-Z0-9]+`)

// IsSpecialCharacter reports whether text contains anything outside the
// alphanumeric/Hangul word alphabet. Used for render spacing only.
func IsSpecialCharacter(text string) bool {
	return specialPattern.MatchString(text)
}

// Tokenize splits passage into an ordered token sequence. Matches that are
// exactly one space are not emitted; their presence is folded into the
// preceding token's SpaceAfter flag so non-whitespace token indices stay
// contiguous. Every other whitespace run (double spaces, tabs, newlines)
// keeps its own token, verbatim, so the renderer can detect line breaks and
// the original text can be reconstructed exactly.
//
// An empty or whitespace-only passage yields no tokens.
func Tokenize(passage string) []Token {
	if strings.TrimSpace(passage) == "" {
		return nil
	}
	matches := tokenPattern.FindAllString(passage, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		if m == " " && len(tokens) > 0 {
			tokens[len(tokens)-1].SpaceAfter = true
			continue
		}
		tokens = append(tokens, Token{Index: len(tokens), Text: m, Kind: classify(m)})
	}
	return tokens
}

func classify(text string) TokenKind {
	if strings.TrimSpace(text) == "" {
		return KindWhitespace
	}
	if IsSpecialCharacter(text) {
		return KindSpecial
	}
	return KindWord
}

// TextRange reconstructs the literal text of tokens[start..end] (inclusive),
// inserting one space after every token whose SpaceAfter flag is set. The
// trailing flag of the end token is honored too, matching how selections
// capture their origin text.
func TextRange(tokens []Token, start, end int) string {
	var b strings.Builder
	for i := start; i <= end && i < len(tokens); i++ {
		if i < 0 {
			continue
		}
		b.WriteString(tokens[i].Text)
		if tokens[i].SpaceAfter {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
