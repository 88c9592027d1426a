package domain

import "fmt"

// ViolationKind is the closed set of violation variants the pipeline emits.
type ViolationKind string

const (
	ViolationWordInvalid         ViolationKind = "word_invalid"
	ViolationWordRepetition      ViolationKind = "word_repetition"
	ViolationSentenceRepetition  ViolationKind = "sentence_repetition"
	ViolationParagraphRepetition ViolationKind = "paragraph_repetition"
	ViolationOracleParseFailure  ViolationKind = "oracle_parse_failure"
	ViolationOracleRule          ViolationKind = "oracle_rule"
)

// Violation is one finding from a pipeline stage. Only the fields the
// variant needs are populated: Word+Count for frequency findings,
// Excerpt+Similarity for sentence/paragraph matches, Word+Reason for
// invalid words.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	Message    string        `json:"message"`
	Word       string        `json:"word,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Count      int           `json:"count,omitempty"`
	Excerpt    string        `json:"excerpt,omitempty"`
	Similarity float64       `json:"similarity,omitempty"`
}

// WordInvalid builds a word_invalid violation naming the offending token.
func WordInvalid(word, reason string) Violation {
	return Violation{
		Kind:    ViolationWordInvalid,
		Message: fmt.Sprintf("word %q is not a valid dictionary word", word),
		Word:    word,
		Reason:  reason,
	}
}

// WordRepetition builds a word_repetition violation with the observed count.
func WordRepetition(word string, count, threshold int) Violation {
	return Violation{
		Kind:    ViolationWordRepetition,
		Message: fmt.Sprintf("word %q appears %d times (limit %d)", word, count, threshold),
		Word:    word,
		Count:   count,
	}
}

// SentenceRepetition builds a sentence_repetition violation carrying the
// offending excerpt and its similarity to prior content.
func SentenceRepetition(excerpt string, similarity float64) Violation {
	return Violation{
		Kind:       ViolationSentenceRepetition,
		Message:    fmt.Sprintf("sentence %q is %.0f%% similar to previously submitted content", shorten(excerpt, 80), similarity*100),
		Excerpt:    excerpt,
		Similarity: similarity,
	}
}

// ParagraphRepetition builds a paragraph_repetition violation.
func ParagraphRepetition(excerpt string, similarity float64) Violation {
	return Violation{
		Kind:       ViolationParagraphRepetition,
		Message:    fmt.Sprintf("paragraph %q is %.0f%% similar to previously submitted content", shorten(excerpt, 80), similarity*100),
		Excerpt:    excerpt,
		Similarity: similarity,
	}
}

// OracleParseFailure builds the violation recorded when the quality oracle
// returned output the strict parser could not accept.
func OracleParseFailure(detail string) Violation {
	return Violation{
		Kind:    ViolationOracleParseFailure,
		Message: "quality oracle returned an unparseable response; word-count fallback applied",
		Reason:  detail,
	}
}

// OracleRule wraps a rule violation reported by the quality oracle.
func OracleRule(message string) Violation {
	return Violation{Kind: ViolationOracleRule, Message: message}
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
