// Package textx contains tests for the text utilities.
package textx

import "testing"

func TestSanitizeText(t *testing.T) {
	in := "he\x00llo\nwo\x7frld\t!"
	got := SanitizeText(in)
	if got != "hello\nworld\t!" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestStripMarkup(t *testing.T) {
	in := "<p>one <b>two</b></p> three"
	got := StripMarkup(in)
	if got != "one  two  three" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one two three", 3},
		{"<div>one</div> two", 2},
		{"one\n\ntwo\tthree  four", 4},
	}
	for _, c := range cases {
		if got := CountWords(c.in); got != c.want {
			t.Fatalf("CountWords(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("The the cat")
	if len(set) != 2 {
		t.Fatalf("expected 2 unique tokens, got %d", len(set))
	}
	if _, ok := set["the"]; !ok {
		t.Fatalf("expected lowercased token")
	}
}
