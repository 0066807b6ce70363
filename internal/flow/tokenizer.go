package flow

import (
	"strings"
	"unicode"
)

// Token is one whitespace-delimited word with its byte range in the original
// master text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize collapses whitespace runs and splits the master text into words,
// discarding empty tokens. Byte offsets refer to the original string.
func Tokenize(master string) []Token {
	var tokens []Token
	start := -1
	for i, r := range master {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: master[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: master[start:], Start: start, End: len(master)})
	}
	return tokens
}

// JoinTokens renders a word range the way the flowed page shows it: words
// joined by single spaces.
func JoinTokens(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// Cursor hands out contiguous word ranges from a tokenized master text.
// A cursor lives for exactly one Flow call, so there is no hidden state to
// reset between renders.
type Cursor struct {
	tokens []Token
	pos    int
}

func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// TakeWords returns the next n words and advances the cursor. n <= 0 takes
// all remaining words. Once the cursor is exhausted every call returns an
// empty slice; later sections render with empty text rather than dropping.
func (c *Cursor) TakeWords(n int) []Token {
	if c.pos >= len(c.tokens) {
		return nil
	}
	if n <= 0 || c.pos+n > len(c.tokens) {
		out := c.tokens[c.pos:]
		c.pos = len(c.tokens)
		return out
	}
	out := c.tokens[c.pos : c.pos+n]
	c.pos += n
	return out
}

// Pos reports the word index of the next unconsumed token.
func (c *Cursor) Pos() int { return c.pos }

// Remaining reports how many words have not been handed out yet.
func (c *Cursor) Remaining() int { return len(c.tokens) - c.pos }
