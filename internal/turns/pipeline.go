package turns

import "strings"

// BuildTurns classifies each non-empty line in order. Blank lines are dropped
// before indexing, so Index counts only the lines that survive.
func BuildTurns(lines []string, cfg Config) []Turn {
	out := make([]Turn, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		out = append(out, buildTurn(len(out), text, ClassifySpeaker(text, cfg.Markers), cfg))
	}
	return out
}

// BuildLabelledTurns is BuildTurns for sources that already name the speaker.
// Marker classification is skipped; scoring and tagging are unchanged.
func BuildLabelledTurns(msgs []Message, cfg Config) []Turn {
	out := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		out = append(out, buildTurn(len(out), text, m.Speaker, cfg))
	}
	return out
}

func buildTurn(idx int, text string, spk Speaker, cfg Config) Turn {
	t := Turn{Index: idx, Text: text, Speaker: spk}
	switch spk {
	case Subject:
		score := ScoreRisk(text, cfg.Tiers)
		t.RiskScore = &score
	case Responder:
		t.Strategies = TagStrategies(text, cfg.Strategies)
	}
	return t
}
