package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apes-labs/scout-cli/internal/model"
)

func profileWith(confidence float64, fields map[string]any) model.CandidateProfile {
	p := model.CandidateProfile{
		IdentityKey: "test-player",
		DisplayName: "Test Player",
		Confidence:  confidence,
		Fields:      map[string]model.FieldValue{},
	}
	for k, v := range fields {
		p.Fields[k] = model.FieldValue{Value: v}
	}
	return p
}

func TestScoreStrongAcquire(t *testing.T) {
	// Age 24, goals 15, assists 9: contributions 24, factor 1.1.
	p := profileWith(60, map[string]any{"age": 24, "goals": 15, "assists": 9})

	rec := Score(p)

	assert.InDelta(t, 26.4, rec.PerformanceScore, 0.001)
	assert.InDelta(t, 23.232, rec.FinalScore, 0.001)
	assert.Equal(t, model.DecisionStrongAcquire, rec.Decision)
	assert.Contains(t, rec.Reasoning, "24 goal contributions")
}

func TestScoreAcquireWhenConfidenceBelowStrongBar(t *testing.T) {
	// Same output but thinner corroboration drops one tier.
	p := profileWith(50, map[string]any{"age": 24, "goals": 15, "assists": 9})

	rec := Score(p)

	assert.InDelta(t, 22.44, rec.FinalScore, 0.001)
	assert.Equal(t, model.DecisionAcquire, rec.Decision)
}

func TestScoreMonitorOnScoreAlone(t *testing.T) {
	// Confidence 20 fails every confidence gate; final score carries it.
	p := profileWith(20, map[string]any{"age": 19, "goals": 8, "assists": 4})

	rec := Score(p)

	// 12 * 1.3 = 15.6; 15.6 * 0.76 = 11.856.
	assert.InDelta(t, 11.856, rec.FinalScore, 0.001)
	assert.Equal(t, model.DecisionMonitor, rec.Decision)
}

func TestScoreMonitorOnConfidenceAlone(t *testing.T) {
	p := profileWith(45, map[string]any{"age": 30, "goals": 2})

	rec := Score(p)

	assert.Equal(t, model.DecisionMonitor, rec.Decision)
}

func TestScoreInvestigateFurther(t *testing.T) {
	p := profileWith(35, map[string]any{"age": 28, "goals": 3})

	rec := Score(p)

	assert.Equal(t, model.DecisionInvestigateFurther, rec.Decision)
}

func TestScoreInsufficientData(t *testing.T) {
	p := profileWith(10, nil)

	rec := Score(p)

	assert.Equal(t, model.DecisionInsufficientData, rec.Decision)
	assert.Equal(t, 0.0, rec.PerformanceScore)
}

func TestScoreMissingAgeIsNeutral(t *testing.T) {
	p := profileWith(50, map[string]any{"goals": 10, "assists": 5})

	rec := Score(p)

	// Neutral age 25 takes the 1.1 factor.
	assert.InDelta(t, 16.5, rec.PerformanceScore, 0.001)
}

func TestScoreAgeFactorBands(t *testing.T) {
	tests := []struct {
		age    int
		factor float64
	}{
		{17, 1.3},
		{20, 1.3},
		{21, 1.1},
		{25, 1.1},
		{26, 0.9},
		{34, 0.9},
	}
	for _, tt := range tests {
		p := profileWith(50, map[string]any{"age": tt.age, "goals": 10})
		rec := Score(p)
		assert.InDelta(t, 10*tt.factor, rec.PerformanceScore, 0.001, "age %d", tt.age)
	}
}

func TestScoreAll(t *testing.T) {
	profiles := []model.CandidateProfile{
		profileWith(60, map[string]any{"age": 24, "goals": 15, "assists": 9}),
		profileWith(10, nil),
	}

	recs := ScoreAll(profiles)

	assert.Len(t, recs, 2)
	assert.Equal(t, model.DecisionStrongAcquire, recs[0].Decision)
	assert.Equal(t, model.DecisionInsufficientData, recs[1].Decision)
}
