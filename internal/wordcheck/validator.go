// Package wordcheck classifies tokens as lexically valid or not, using a
// primary dictionary lookup with a deterministic heuristic fallback.
package wordcheck

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// Result is the per-token verdict.
type Result struct {
	Word    string `json:"word"`
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason"`
}

// Validator checks words against a dictionary service, degrading silently
// to the bundled heuristic when the service is unavailable. Lookup errors
// never fail validation; a definitive not-found does.
type Validator struct {
	dict domain.DictionaryClient
}

// NewValidator constructs a Validator around the given dictionary client.
func NewValidator(dict domain.DictionaryClient) *Validator {
	return &Validator{dict: dict}
}

// ValidateWords returns a verdict for every input token in order.
func (v *Validator) ValidateWords(ctx domain.Context, words []string) []Result {
	out := make([]Result, 0, len(words))
	for _, w := range words {
		out = append(out, v.validateOne(ctx, w))
	}
	return out
}

// InvalidWords runs ValidateWords over the whitespace-delimited tokens of
// content and returns only the failures, as violations naming each token.
func (v *Validator) InvalidWords(ctx domain.Context, content string) []domain.Violation {
	var out []domain.Violation
	for _, res := range v.ValidateWords(ctx, strings.Fields(content)) {
		if !res.IsValid {
			out = append(out, domain.WordInvalid(res.Word, res.Reason))
		}
	}
	return out
}

func (v *Validator) validateOne(ctx domain.Context, word string) Result {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" || isDigitsOnly(trimmed) || isPunctOnly(trimmed) {
		return Result{Word: word, IsValid: true, Reason: "skipped"}
	}

	normalized := normalize(trimmed)
	if normalized == "" {
		return Result{Word: word, IsValid: true, Reason: "skipped"}
	}

	found, err := v.dict.Lookup(ctx, normalized)
	if err == nil {
		src := v.dict.Source()
		if found {
			return Result{Word: word, IsValid: true, Reason: fmt.Sprintf("%s_dictionary", src)}
		}
		// A definitive not-found is authoritative; errors below get
		// heuristic leniency, explicit negatives do not.
		return Result{Word: word, IsValid: false, Reason: fmt.Sprintf("not_in_%s_dictionary", src)}
	}

	slog.Warn("dictionary lookup failed, using heuristic fallback",
		slog.String("word", normalized), slog.Any("error", err))
	observability.DictionaryFallbackTotal.Inc()

	if heuristicAccept(normalized) {
		return Result{Word: word, IsValid: true, Reason: "basic_wordlist"}
	}
	return Result{Word: word, IsValid: false, Reason: "not_in_basic_wordlist"}
}

// normalize lowercases the token and strips leading/trailing punctuation so
// that "Hello," and "hello" validate identically.
func normalize(w string) string {
	return strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	}))
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isPunctOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return len(s) > 0
}
