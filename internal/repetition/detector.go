// Package repetition detects excessive word frequency and near-duplicate
// sentences and paragraphs against previously submitted content.
package repetition

import (
	"regexp"
	"strings"

	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// CheckType selects which checks Detector.Check runs.
type CheckType string

const (
	CheckWords      CheckType = "word"
	CheckSentences  CheckType = "sentence"
	CheckParagraphs CheckType = "paragraph"
	CheckAll        CheckType = "all"
)

var wordRe = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Detector runs the repetition checks configured by a policy.
type Detector struct {
	policy config.Policy
}

// NewDetector constructs a Detector with the given policy thresholds.
func NewDetector(p config.Policy) *Detector {
	return &Detector{policy: p}
}

// Check runs the selected checks on content against the accumulated prior
// content of the same task. The returned slice is ordered: frequency
// findings first, then sentence matches, then paragraph matches. An empty
// slice means the content passed.
func (d *Detector) Check(content, existing string, ct CheckType) []domain.Violation {
	var out []domain.Violation
	if ct == CheckWords || ct == CheckAll {
		out = append(out, d.CheckFrequency(content)...)
	}
	if ct == CheckSentences || ct == CheckAll {
		out = append(out, d.CheckSentences(content, existing)...)
	}
	if ct == CheckParagraphs || ct == CheckAll {
		out = append(out, d.CheckParagraphs(content, existing)...)
	}
	return out
}

// CheckFrequency flags any meaningful word appearing more than
// max(FreqFloor, tokens/FreqDivisor) times. Tokens at or below
// MinTokenLen characters are not counted.
func (d *Detector) CheckFrequency(content string) []domain.Violation {
	tokens := wordRe.FindAllString(strings.ToLower(content), -1)
	threshold := len(tokens) / d.policy.FreqDivisor
	if threshold < d.policy.FreqFloor {
		threshold = d.policy.FreqFloor
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if len(tok) <= d.policy.MinTokenLen {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	var out []domain.Violation
	for _, w := range order {
		if counts[w] > threshold {
			out = append(out, domain.WordRepetition(w, counts[w], threshold))
		}
	}
	return out
}

// CheckSentences compares every sentence of content against every sentence
// of the prior corpus; the first prior match at or above the similarity
// threshold wins and scanning moves to the next new sentence.
func (d *Detector) CheckSentences(content, existing string) []domain.Violation {
	fresh := splitSentences(content, d.policy.SentenceMinLen)
	prior := splitSentences(existing, d.policy.SentenceMinLen)
	var out []domain.Violation
	for _, s := range fresh {
		for _, p := range prior {
			if sim := Jaccard(s, p); sim >= d.policy.SentenceSimilarity {
				out = append(out, domain.SentenceRepetition(s, sim))
				break
			}
		}
	}
	return out
}

// CheckParagraphs is the blank-line-delimited analogue of CheckSentences
// with its own length floor and similarity threshold.
func (d *Detector) CheckParagraphs(content, existing string) []domain.Violation {
	fresh := splitParagraphs(content, d.policy.ParagraphMinLen)
	prior := splitParagraphs(existing, d.policy.ParagraphMinLen)
	var out []domain.Violation
	for _, s := range fresh {
		for _, p := range prior {
			if sim := Jaccard(s, p); sim >= d.policy.ParagraphSimilarity {
				out = append(out, domain.ParagraphRepetition(s, sim))
				break
			}
		}
	}
	return out
}

// Jaccard is |A∩B| / |A∪B| over the whitespace-delimited token sets of the
// two strings. Symmetric, bounded in [0,1], 1.0 for identical non-empty
// strings, 0 when either side is empty.
func Jaccard(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	inter := 0
	for w := range as {
		if _, ok := bs[w]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

func splitSentences(s string, minLen int) []string {
	var out []string
	for _, frag := range sentenceSplitRe.Split(s, -1) {
		frag = strings.ToLower(strings.TrimSpace(frag))
		if len(frag) > minLen {
			out = append(out, frag)
		}
	}
	return out
}

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

func splitParagraphs(s string, minLen int) []string {
	var out []string
	for _, frag := range paragraphSplitRe.Split(s, -1) {
		frag = strings.ToLower(strings.TrimSpace(frag))
		if len(frag) > minLen {
			out = append(out, frag)
		}
	}
	return out
}
