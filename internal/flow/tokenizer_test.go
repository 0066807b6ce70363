package flow

import "testing"

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	tokens := Tokenize("  A\tB \n  C  ")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if JoinTokens(tokens) != "A B C" {
		t.Fatalf("unexpected join: %q", JoinTokens(tokens))
	}
	if tokens[0].Start != 2 || tokens[0].End != 3 {
		t.Fatalf("unexpected offsets for first token: [%d,%d)", tokens[0].Start, tokens[0].End)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %d", len(got))
	}
	if got := Tokenize("   \n\t "); len(got) != 0 {
		t.Fatalf("expected no tokens for all-whitespace input, got %d", len(got))
	}
}

func TestCursorTakeWords(t *testing.T) {
	cursor := NewCursor(Tokenize("A B C D E F"))

	first := cursor.TakeWords(3)
	if JoinTokens(first) != "A B C" {
		t.Fatalf("unexpected first range: %q", JoinTokens(first))
	}

	rest := cursor.TakeWords(0)
	if JoinTokens(rest) != "D E F" {
		t.Fatalf("expected take-all to return remainder, got %q", JoinTokens(rest))
	}

	if cursor.Remaining() != 0 {
		t.Fatalf("expected exhausted cursor, %d remaining", cursor.Remaining())
	}
}

func TestCursorExhaustionReturnsEmpty(t *testing.T) {
	cursor := NewCursor(Tokenize("one two"))
	cursor.TakeWords(0)

	for i := 0; i < 3; i++ {
		if got := cursor.TakeWords(5); len(got) != 0 {
			t.Fatalf("call %d after exhaustion returned %d words", i, len(got))
		}
	}
}

func TestCursorOverRequestClampsToRemainder(t *testing.T) {
	cursor := NewCursor(Tokenize("A B C"))
	got := cursor.TakeWords(10)
	if JoinTokens(got) != "A B C" {
		t.Fatalf("expected clamped take, got %q", JoinTokens(got))
	}
}
