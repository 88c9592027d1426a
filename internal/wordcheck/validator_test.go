package wordcheck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

type fakeDict struct {
	found map[string]bool
	err   error
}

func (f fakeDict) Lookup(_ domain.Context, w string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.found[w], nil
}

func (f fakeDict) Source() string { return "free" }

func TestValidateWords_SkipsDigitsAndPunctuation(t *testing.T) {
	v := NewValidator(fakeDict{})
	res := v.ValidateWords(context.Background(), []string{"1234", "!!!", "...", "42"})
	for _, r := range res {
		assert.True(t, r.IsValid)
		assert.Equal(t, "skipped", r.Reason)
	}
}

func TestValidateWords_DictionaryVerdicts(t *testing.T) {
	v := NewValidator(fakeDict{found: map[string]bool{"river": true}})
	res := v.ValidateWords(context.Background(), []string{"river", "blorptag"})
	require.Len(t, res, 2)

	assert.True(t, res[0].IsValid)
	assert.Equal(t, "free_dictionary", res[0].Reason)

	// a definitive not-found is authoritative, no heuristic leniency
	assert.False(t, res[1].IsValid)
	assert.Equal(t, "not_in_free_dictionary", res[1].Reason)
}

func TestValidateWords_NormalizesPunctuationAndCase(t *testing.T) {
	v := NewValidator(fakeDict{found: map[string]bool{"river": true}})
	res := v.ValidateWords(context.Background(), []string{"River,", "\"river\""})
	assert.True(t, res[0].IsValid)
	assert.True(t, res[1].IsValid)
}

func TestValidateWords_FallbackOnLookupError(t *testing.T) {
	v := NewValidator(fakeDict{err: errors.New("connection refused")})
	ctx := context.Background()

	cases := []struct {
		word  string
		valid bool
	}{
		{"hello", true},       // heuristic-clean
		{"the", true},         // allow-list
		{"a", true},           // allow-list beats the length floor
		{"xyzxyzxyzxyz", false}, // repeated unit, no vowel
		{"aaaaab", false},       // same character run
		{"hahahahaha", false},   // two-char unit repeated
		{"abcdfgh", false},      // five consecutive consonants
		{"brrr", false},         // no vowel
		{"x", false},            // too short, not in allow-list
		{strings.Repeat("ab", 14), false}, // too long and repeated unit
	}
	for _, c := range cases {
		res := v.ValidateWords(ctx, []string{c.word})
		require.Len(t, res, 1)
		assert.Equalf(t, c.valid, res[0].IsValid, "word %q", c.word)
		if c.valid {
			assert.Contains(t, []string{"basic_wordlist", "skipped"}, res[0].Reason)
		} else {
			assert.Equal(t, "not_in_basic_wordlist", res[0].Reason)
		}
	}
}

func TestInvalidWords_NamesOffendingTokens(t *testing.T) {
	v := NewValidator(fakeDict{err: errors.New("timeout")})
	vs := v.InvalidWords(context.Background(), "the river xyzxyzxyzxyz flows")
	require.Len(t, vs, 1)
	assert.Equal(t, domain.ViolationWordInvalid, vs[0].Kind)
	assert.Equal(t, "xyzxyzxyzxyz", vs[0].Word)
	assert.Contains(t, vs[0].Message, "xyzxyzxyzxyz")
}

func TestHeuristicAccept_Bounds(t *testing.T) {
	assert.False(t, heuristicAccept("q"))
	assert.False(t, heuristicAccept(strings.Repeat("apple", 5))) // 25 chars
	assert.True(t, heuristicAccept("apple"))
	assert.True(t, heuristicAccept("evaluation"))
}
