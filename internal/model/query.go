package model

// Difficulty is the estimated search difficulty of a scouting query.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IndicatorSet holds the signals derived from a raw scouting query.
// It is produced once by the analyzer and read-only downstream.
type IndicatorSet struct {
	Youth          bool       `json:"youth"`
	Position       string     `json:"position,omitempty"`
	Nationality    string     `json:"nationality,omitempty"`
	League         string     `json:"league,omitempty"`
	Attributes     []string   `json:"attributes,omitempty"`
	Year           int        `json:"year,omitempty"`
	IsSpecificName bool       `json:"is_specific_name"`
	Difficulty     Difficulty `json:"difficulty"`
}
