package turns

import "strings"

// ClassifySpeaker labels text as Responder when it contains any marker phrase.
// Matching is case-sensitive substring containment.
func ClassifySpeaker(text string, markers []string) Speaker {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return Responder
		}
	}
	return Subject
}

// ScoreRisk returns the score of the first tier whose pattern matches anywhere
// in text, or 0 when none do. Tiers are evaluated in the order given.
func ScoreRisk(text string, tiers []RiskTier) int {
	for _, t := range tiers {
		if t.Pattern != nil && t.Pattern.MatchString(text) {
			return t.Score
		}
	}
	return 0
}

// TagStrategies returns every rule tag with at least one matching pattern.
// The result is never nil and lists tags in rule order.
func TagStrategies(text string, rules []StrategyRule) []string {
	tags := []string{}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.Tag] {
			continue
		}
		for _, p := range r.Patterns {
			if p != nil && p.MatchString(text) {
				tags = append(tags, r.Tag)
				seen[r.Tag] = true
				break
			}
		}
	}
	return tags
}
