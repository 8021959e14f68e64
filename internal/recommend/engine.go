// Package recommend turns a consolidated candidate profile into a
// scored acquisition verdict.
package recommend

import (
	"fmt"

	"github.com/apes-labs/scout-cli/internal/model"
)

// neutralAge stands in when no age was extracted; it lands in the
// mid-career factor band.
const neutralAge = 25

// ageFactor weights raw output by development headroom.
func ageFactor(age int) float64 {
	switch {
	case age <= 20:
		return 1.3
	case age <= 25:
		return 1.1
	default:
		return 0.9
	}
}

// Score derives the recommendation for one profile. Missing goals and
// assists count as zero; a missing age is treated as neutral. The
// decision thresholds form an ordered chain and the first match wins.
func Score(p model.CandidateProfile) model.Recommendation {
	contributions := p.Int("goals") + p.Int("assists")

	age := p.Int("age")
	if _, ok := p.Fields["age"]; !ok {
		age = neutralAge
	}

	performance := float64(contributions) * ageFactor(age)
	confidenceFactor := p.Confidence / 100
	finalScore := performance * (0.7 + 0.3*confidenceFactor)

	decision, reasoning := decide(finalScore, p.Confidence, contributions)

	return model.Recommendation{
		IdentityKey:       p.IdentityKey,
		DisplayName:       p.DisplayName,
		Decision:          decision,
		Reasoning:         reasoning,
		ConfidencePercent: p.Confidence,
		PerformanceScore:  performance,
		FinalScore:        finalScore,
	}
}

// ScoreAll evaluates every profile in order.
func ScoreAll(profiles []model.CandidateProfile) []model.Recommendation {
	recs := make([]model.Recommendation, len(profiles))
	for i, p := range profiles {
		recs[i] = Score(p)
	}
	return recs
}

func decide(finalScore, confidence float64, contributions int) (model.Decision, string) {
	switch {
	case finalScore >= 20 && confidence >= 60:
		return model.DecisionStrongAcquire, fmt.Sprintf(
			"Elite output of %d goal contributions backed by well-corroborated sources.", contributions)
	case finalScore >= 15 && confidence >= 50:
		return model.DecisionAcquire, fmt.Sprintf(
			"Strong output of %d goal contributions with solid source agreement.", contributions)
	case finalScore >= 10 || confidence >= 40:
		return model.DecisionMonitor, fmt.Sprintf(
			"Promising signs at %d goal contributions; keep tracking before committing.", contributions)
	case confidence >= 30:
		return model.DecisionInvestigateFurther, fmt.Sprintf(
			"Only %d goal contributions confirmed so far; commission a closer look.", contributions)
	default:
		return model.DecisionInsufficientData, fmt.Sprintf(
			"Too little corroborated evidence (%d goal contributions) to form a view.", contributions)
	}
}
