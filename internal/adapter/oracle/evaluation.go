package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// QualityChecks are the oracle's boolean content assessments.
type QualityChecks struct {
	HasSpam       bool `json:"hasSpam"`
	HasRepetition bool `json:"hasRepetition"`
	IsRelevant    bool `json:"isRelevant"`
	IsOriginal    bool `json:"isOriginal"`
}

// Evaluation is the fully validated oracle verdict. FallbackUsed marks
// evaluations synthesized by FallbackEvaluation instead of parsed from the
// oracle.
type Evaluation struct {
	Verdict            domain.EvaluationStatus
	WordCountCompliant bool
	QualityScore       int
	RuleViolations     []string
	QualityChecks      QualityChecks
	Reasoning          string
	FlaggedIssues      []string
	Recommendations    []string
	FallbackUsed       bool
}

// rawEvaluation mirrors the wire schema with pointers so that missing or
// renamed fields are detected rather than silently zeroed.
type rawEvaluation struct {
	Verdict            *string   `json:"verdict"`
	WordCountCompliant *bool     `json:"wordCountCompliant"`
	QualityScore       *int      `json:"qualityScore"`
	RuleViolations     *[]string `json:"ruleViolations"`
	QualityChecks      *struct {
		HasSpam       *bool `json:"hasSpam"`
		HasRepetition *bool `json:"hasRepetition"`
		IsRelevant    *bool `json:"isRelevant"`
		IsOriginal    *bool `json:"isOriginal"`
	} `json:"qualityChecks"`
	Reasoning       *string   `json:"reasoning"`
	FlaggedIssues   *[]string `json:"flaggedIssues"`
	Recommendations *[]string `json:"recommendations"`
}

// ParseEvaluation cleans raw oracle output and strictly parses it into an
// Evaluation. Any missing field, unknown verdict, or out-of-range score is
// an error; callers substitute FallbackEvaluation on error so that a
// malformed external response can never crash the pipeline.
func ParseEvaluation(raw string) (Evaluation, error) {
	cleaned := cleanResponse(raw)

	var re rawEvaluation
	if err := json.Unmarshal([]byte(cleaned), &re); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", domain.ErrSchemaInvalid, err)
	}

	switch {
	case re.Verdict == nil:
		return Evaluation{}, fmt.Errorf("%w: missing verdict", domain.ErrSchemaInvalid)
	case re.WordCountCompliant == nil:
		return Evaluation{}, fmt.Errorf("%w: missing wordCountCompliant", domain.ErrSchemaInvalid)
	case re.QualityScore == nil:
		return Evaluation{}, fmt.Errorf("%w: missing qualityScore", domain.ErrSchemaInvalid)
	case re.RuleViolations == nil:
		return Evaluation{}, fmt.Errorf("%w: missing ruleViolations", domain.ErrSchemaInvalid)
	case re.QualityChecks == nil:
		return Evaluation{}, fmt.Errorf("%w: missing qualityChecks", domain.ErrSchemaInvalid)
	case re.Reasoning == nil:
		return Evaluation{}, fmt.Errorf("%w: missing reasoning", domain.ErrSchemaInvalid)
	case re.FlaggedIssues == nil:
		return Evaluation{}, fmt.Errorf("%w: missing flaggedIssues", domain.ErrSchemaInvalid)
	}

	qc := re.QualityChecks
	if qc.HasSpam == nil || qc.HasRepetition == nil || qc.IsRelevant == nil || qc.IsOriginal == nil {
		return Evaluation{}, fmt.Errorf("%w: incomplete qualityChecks", domain.ErrSchemaInvalid)
	}

	var verdict domain.EvaluationStatus
	switch *re.Verdict {
	case string(domain.EvaluationTargetMet):
		verdict = domain.EvaluationTargetMet
	case string(domain.EvaluationTargetNotMet):
		verdict = domain.EvaluationTargetNotMet
	default:
		return Evaluation{}, fmt.Errorf("%w: unknown verdict %q", domain.ErrSchemaInvalid, *re.Verdict)
	}

	if *re.QualityScore < 0 || *re.QualityScore > 100 {
		return Evaluation{}, fmt.Errorf("%w: qualityScore %d out of range", domain.ErrSchemaInvalid, *re.QualityScore)
	}

	ev := Evaluation{
		Verdict:            verdict,
		WordCountCompliant: *re.WordCountCompliant,
		QualityScore:       *re.QualityScore,
		RuleViolations:     *re.RuleViolations,
		QualityChecks: QualityChecks{
			HasSpam:       *qc.HasSpam,
			HasRepetition: *qc.HasRepetition,
			IsRelevant:    *qc.IsRelevant,
			IsOriginal:    *qc.IsOriginal,
		},
		Reasoning:     *re.Reasoning,
		FlaggedIssues: *re.FlaggedIssues,
	}
	if re.Recommendations != nil {
		ev.Recommendations = *re.Recommendations
	}
	return ev, nil
}

// FallbackEvaluation is the deterministic verdict used when the oracle's
// response could not be parsed: pass/fail comes purely from word-count
// compliance, the score is neutral, and the submission is flagged for
// mandatory admin review.
func FallbackEvaluation(targetWords, actualWords int, detail string) Evaluation {
	verdict := domain.EvaluationTargetNotMet
	if actualWords >= targetWords {
		verdict = domain.EvaluationTargetMet
	}
	return Evaluation{
		Verdict:            verdict,
		WordCountCompliant: actualWords >= targetWords,
		QualityScore:       50,
		RuleViolations:     []string{"quality oracle response could not be parsed: " + detail},
		QualityChecks:      QualityChecks{IsRelevant: true, IsOriginal: true},
		Reasoning:          "oracle response unusable; verdict derived from word count alone",
		FlaggedIssues:      []string{"oracle response unparseable, manual review required"},
		FallbackUsed:       true,
	}
}

// ShouldFlag reports whether the evaluation requires mandatory admin
// review regardless of verdict.
func (e Evaluation) ShouldFlag(scoreBelow, violationsAbove int) bool {
	return len(e.FlaggedIssues) > 0 || e.QualityScore < scoreBelow || len(e.RuleViolations) > violationsAbove
}
