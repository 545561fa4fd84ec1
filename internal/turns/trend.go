package turns

import "sort"

// FindTurningPoints walks the subject-only sub-sequence and reports every turn
// whose score is strictly lower than the previous subject turn's. Responder
// turns between them never count as a decrease.
//
// Each point carries the strategies of the turn immediately before it in the
// full sequence, when that turn is a responder turn.
func FindTurningPoints(turns []Turn) []TurningPoint {
	byIndex := make(map[int]*Turn, len(turns))
	for i := range turns {
		byIndex[turns[i].Index] = &turns[i]
	}

	out := []TurningPoint{}
	var prev *int
	for i := range turns {
		t := &turns[i]
		if t.Speaker != Subject || t.RiskScore == nil {
			continue
		}
		cur := *t.RiskScore
		if prev != nil && cur-*prev < 0 {
			out = append(out, TurningPoint{
				TurnIndex:     t.Index,
				PreviousScore: *prev,
				CurrentScore:  cur,
				Strategies:    precedingStrategies(byIndex, t.Index),
			})
		}
		prev = &cur
	}
	return out
}

func precedingStrategies(byIndex map[int]*Turn, idx int) []string {
	if idx-1 < 0 {
		return []string{}
	}
	before, ok := byIndex[idx-1]
	if !ok || before.Speaker != Responder {
		return []string{}
	}
	tags := make([]string, len(before.Strategies))
	copy(tags, before.Strategies)
	return tags
}

// Summarize aggregates scores, strategy usage and turning points.
// MaxScore and LastScore stay nil when there is no subject turn to report on.
func Summarize(turns []Turn) Summary {
	s := Summary{
		StrategyCounts: []StrategyCount{},
		TurningPoints:  FindTurningPoints(turns),
	}

	counts := make(map[string]int)
	for _, t := range turns {
		switch t.Speaker {
		case Subject:
			s.SubjectTurns++
			if t.RiskScore == nil {
				continue
			}
			score := *t.RiskScore
			if s.MaxScore == nil || score > *s.MaxScore {
				s.MaxScore = &score
			}
			last := score
			s.LastScore = &last
		case Responder:
			s.ResponderTurns++
			seen := make(map[string]bool, len(t.Strategies))
			for _, tag := range t.Strategies {
				if seen[tag] {
					continue
				}
				seen[tag] = true
				counts[tag]++
			}
		}
	}

	for tag, n := range counts {
		s.StrategyCounts = append(s.StrategyCounts, StrategyCount{Tag: tag, Count: n})
	}
	sort.Slice(s.StrategyCounts, func(i, j int) bool {
		a, b := s.StrategyCounts[i], s.StrategyCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})

	return s
}
