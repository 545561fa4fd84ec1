package turns

import (
	"reflect"
	"testing"
)

func score(n int) *int { return &n }

func subject(idx, s int) Turn {
	return Turn{Index: idx, Text: "s", Speaker: Subject, RiskScore: score(s)}
}

func responder(idx int, tags ...string) Turn {
	if tags == nil {
		tags = []string{}
	}
	return Turn{Index: idx, Text: "r", Speaker: Responder, Strategies: tags}
}

func TestFindTurningPoints_Scenario(t *testing.T) {
	lines := []string{"我今天想死", "謝謝你願意說出來，我理解你的痛苦", "我後來去洗澡，感覺好一點"}
	points := FindTurningPoints(BuildTurns(lines, scenarioConfig()))

	if len(points) != 1 {
		t.Fatalf("expected 1 turning point, got %d", len(points))
	}
	want := TurningPoint{TurnIndex: 2, PreviousScore: 2, CurrentScore: 0, Strategies: []string{"情緒驗證"}}
	if !reflect.DeepEqual(points[0], want) {
		t.Errorf("point = %+v, want %+v", points[0], want)
	}
}

func TestFindTurningPoints(t *testing.T) {
	tests := []struct {
		name  string
		turns []Turn
		want  []TurningPoint
	}{
		{
			name:  "empty",
			turns: nil,
			want:  []TurningPoint{},
		},
		{
			name:  "single subject turn never emits",
			turns: []Turn{subject(0, 3)},
			want:  []TurningPoint{},
		},
		{
			name:  "increase and equal are not turning points",
			turns: []Turn{subject(0, 1), subject(1, 2), subject(2, 2)},
			want:  []TurningPoint{},
		},
		{
			name:  "consecutive subject turns attach no strategies",
			turns: []Turn{subject(0, 3), subject(1, 1)},
			want:  []TurningPoint{{TurnIndex: 1, PreviousScore: 3, CurrentScore: 1, Strategies: []string{}}},
		},
		{
			name: "responder turns are skipped when computing the delta",
			turns: []Turn{
				subject(0, 2),
				responder(1, "validation"),
				responder(2, "grounding"),
				subject(3, 2),
				responder(4, "activation"),
				subject(5, 0),
			},
			want: []TurningPoint{{TurnIndex: 5, PreviousScore: 2, CurrentScore: 0, Strategies: []string{"activation"}}},
		},
		{
			name: "responder before the first subject turn is ignored",
			turns: []Turn{
				responder(0, "validation"),
				subject(1, 3),
				responder(2),
				subject(3, 1),
				subject(4, 0),
			},
			want: []TurningPoint{
				{TurnIndex: 3, PreviousScore: 3, CurrentScore: 1, Strategies: []string{}},
				{TurnIndex: 4, PreviousScore: 1, CurrentScore: 0, Strategies: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTurningPoints(tt.turns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindTurningPoints = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindTurningPoints_FirstRawPositionDoesNotPanic(t *testing.T) {
	// A hand-built slice whose subject turns start at raw index 0 and whose
	// predecessor is missing from the slice entirely.
	turns := []Turn{subject(4, 3), subject(0, 1)}
	points := FindTurningPoints(turns)
	if len(points) != 1 {
		t.Fatalf("expected 1 turning point, got %d", len(points))
	}
	if points[0].TurnIndex != 0 || len(points[0].Strategies) != 0 || points[0].Strategies == nil {
		t.Errorf("point = %+v", points[0])
	}
}

func TestFindTurningPoints_CopiesStrategies(t *testing.T) {
	turns := []Turn{subject(0, 2), responder(1, "validation"), subject(2, 0)}
	points := FindTurningPoints(turns)
	points[0].Strategies[0] = "mutated"
	if turns[1].Strategies[0] != "validation" {
		t.Error("turning point shares the responder's strategy slice")
	}
}

func TestSummarize(t *testing.T) {
	turns := []Turn{
		subject(0, 2),
		responder(1, "validation", "grounding"),
		subject(2, 3),
		responder(3, "validation"),
		subject(4, 1),
		responder(5),
	}

	s := Summarize(turns)
	if s.SubjectTurns != 3 || s.ResponderTurns != 3 {
		t.Errorf("turn counts = %d/%d", s.SubjectTurns, s.ResponderTurns)
	}
	if s.MaxScore == nil || *s.MaxScore != 3 {
		t.Errorf("max score = %v", s.MaxScore)
	}
	if s.LastScore == nil || *s.LastScore != 1 {
		t.Errorf("last score = %v", s.LastScore)
	}

	wantCounts := []StrategyCount{{Tag: "validation", Count: 2}, {Tag: "grounding", Count: 1}}
	if !reflect.DeepEqual(s.StrategyCounts, wantCounts) {
		t.Errorf("strategy counts = %+v, want %+v", s.StrategyCounts, wantCounts)
	}

	if len(s.TurningPoints) != 1 || s.TurningPoints[0].TurnIndex != 4 {
		t.Errorf("turning points = %+v", s.TurningPoints)
	}
}

func TestSummarize_CountsTurnsNotMatches(t *testing.T) {
	turns := []Turn{responder(0, "validation", "validation")}
	s := Summarize(turns)
	if len(s.StrategyCounts) != 1 || s.StrategyCounts[0].Count != 1 {
		t.Errorf("strategy counts = %+v", s.StrategyCounts)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.MaxScore != nil || s.LastScore != nil {
		t.Errorf("expected no data for max/last, got %v/%v", s.MaxScore, s.LastScore)
	}
	if s.StrategyCounts == nil || len(s.StrategyCounts) != 0 {
		t.Errorf("strategy counts = %#v", s.StrategyCounts)
	}
	if s.TurningPoints == nil || len(s.TurningPoints) != 0 {
		t.Errorf("turning points = %#v", s.TurningPoints)
	}
}

func TestSummarize_ResponderOnly(t *testing.T) {
	s := Summarize([]Turn{responder(0, "validation")})
	if s.MaxScore != nil || s.LastScore != nil {
		t.Error("responder-only conversation should have no score data")
	}
}
