package model

// Decision is the recommendation label attached to a profile.
type Decision string

const (
	DecisionStrongAcquire      Decision = "strong acquire"
	DecisionAcquire            Decision = "acquire"
	DecisionMonitor            Decision = "monitor"
	DecisionInvestigateFurther Decision = "investigate further"
	DecisionInsufficientData   Decision = "insufficient data"
)

// Recommendation is the scored verdict for one candidate profile.
// It is derived purely from the profile and can be recomputed at any time.
type Recommendation struct {
	IdentityKey       string   `json:"identity_key"`
	DisplayName       string   `json:"display_name"`
	Decision          Decision `json:"decision"`
	Reasoning         string   `json:"reasoning"`
	ConfidencePercent float64  `json:"confidence_percent"`
	PerformanceScore  float64  `json:"performance_score"`
	FinalScore        float64  `json:"final_score"`
}
