package oracle

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// SystemPrompt instructs the oracle to be conservative and to answer with
// the exact evaluation schema ParseEvaluation expects.
const SystemPrompt = `You are a strict evaluator of daily writing submissions for a deposit-backed writing commitment service. Respond with a single JSON object and nothing else, matching exactly this schema:
{"verdict":"target_met"|"target_not_met","wordCountCompliant":bool,"qualityScore":0-100,"ruleViolations":[string],"qualityChecks":{"hasSpam":bool,"hasRepetition":bool,"isRelevant":bool,"isOriginal":bool},"reasoning":string,"flaggedIssues":[string],"recommendations":[string]}
Be conservative: return "target_not_met" whenever the actual word count is more than 10% below the target, or when you detect spam, excessive repetition, irrelevant filler, or non-original content.`

// BuildUserPrompt renders the evaluation request. Content beyond the token
// budget is truncated at a word boundary so the oracle always receives the
// metadata lines intact.
func BuildUserPrompt(content, title string, targetWords, actualWords, tokenBudget int) string {
	content = truncateToTokens(content, tokenBudget)
	var b strings.Builder
	fmt.Fprintf(&b, "Task title: %s\n", title)
	fmt.Fprintf(&b, "Target word count: %d\n", targetWords)
	fmt.Fprintf(&b, "Actual word count: %d\n\n", actualWords)
	b.WriteString("Submission content:\n")
	b.WriteString(content)
	b.WriteString("\n\nReturn the JSON evaluation object now.")
	return b.String()
}

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoding() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		var err error
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			slog.Warn("tiktoken encoding unavailable, falling back to word estimate", slog.Any("error", err))
		}
	})
	return enc
}

// CountTokens returns the tiktoken count for s, or a rough word-based
// estimate when the encoding cannot be loaded.
func CountTokens(s string) int {
	if e := encoding(); e != nil {
		return len(e.Encode(s, nil, nil))
	}
	// ~0.75 words per token is the usual English estimate
	return len(strings.Fields(s)) * 4 / 3
}

func truncateToTokens(s string, budget int) string {
	if budget <= 0 || CountTokens(s) <= budget {
		return s
	}
	words := strings.Fields(s)
	// binary search the largest word prefix within budget
	lo, hi := 0, len(words)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if CountTokens(strings.Join(words[:mid], " ")) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.Join(words[:lo], " ")
}
