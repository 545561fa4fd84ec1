package turns

import (
	"fmt"
	"regexp"
)

// Speaker identifies who produced a turn.
type Speaker int

const (
	Subject   Speaker = iota // the person whose statements are risk-scored
	Responder                // the supporter whose statements are strategy-tagged
)

func (s Speaker) String() string {
	if s == Responder {
		return "responder"
	}
	return "subject"
}

// MarshalText renders the speaker as its lowercase name in JSON output.
func (s Speaker) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Speaker) UnmarshalText(b []byte) error {
	switch string(b) {
	case "subject":
		*s = Subject
	case "responder":
		*s = Responder
	default:
		return fmt.Errorf("unknown speaker %q", b)
	}
	return nil
}

// Turn is one non-empty line of a conversation after classification.
type Turn struct {
	Index      int      `json:"index"`
	Text       string   `json:"text"`
	Speaker    Speaker  `json:"speaker"`
	RiskScore  *int     `json:"risk_score,omitempty"` // nil for responder turns
	Strategies []string `json:"strategies"`          // non-nil for responder turns
}

// Message is a turn whose speaker is already known from the source format.
type Message struct {
	Speaker Speaker
	Text    string
}

// RiskTier pairs a score with the pattern that triggers it.
type RiskTier struct {
	Score   int
	Pattern *regexp.Regexp
}

// StrategyRule tags a responder turn when any of its patterns match.
type StrategyRule struct {
	Tag      string
	Patterns []*regexp.Regexp
}

// Config is the compiled rule set the pipeline runs with.
type Config struct {
	Markers    []string
	Tiers      []RiskTier // evaluated in slice order
	Strategies []StrategyRule
}

// TurningPoint is a subject turn whose score dropped below the previous subject turn.
type TurningPoint struct {
	TurnIndex     int      `json:"turn_index"`
	PreviousScore int      `json:"previous_score"`
	CurrentScore  int      `json:"current_score"`
	Strategies    []string `json:"strategies"` // from the raw preceding responder turn
}

// StrategyCount is the number of responder turns carrying a tag.
type StrategyCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Summary aggregates a classified conversation.
type Summary struct {
	SubjectTurns   int             `json:"subject_turns"`
	ResponderTurns int             `json:"responder_turns"`
	MaxScore       *int            `json:"max_score"`  // nil when there are no subject turns
	LastScore      *int            `json:"last_score"` // nil when there are no subject turns
	StrategyCounts []StrategyCount `json:"strategy_counts"`
	TurningPoints  []TurningPoint  `json:"turning_points"`
}
