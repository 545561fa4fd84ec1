package turns

import (
	"reflect"
	"regexp"
	"testing"
)

func scenarioConfig() Config {
	return Config{
		Markers:    []string{"謝謝你願意"},
		Tiers:      []RiskTier{{Score: 2, Pattern: regexp.MustCompile("想死")}},
		Strategies: []StrategyRule{rule("情緒驗證", "我理解")},
	}
}

func TestBuildTurns_Scenario(t *testing.T) {
	lines := []string{"我今天想死", "謝謝你願意說出來，我理解你的痛苦", "我後來去洗澡，感覺好一點"}

	got := BuildTurns(lines, scenarioConfig())
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got))
	}

	if got[0].Speaker != Subject || got[0].RiskScore == nil || *got[0].RiskScore != 2 {
		t.Errorf("turn 0 = %+v", got[0])
	}
	if got[0].Strategies != nil {
		t.Errorf("subject turn should carry no strategies, got %v", got[0].Strategies)
	}
	if got[1].Speaker != Responder || got[1].RiskScore != nil {
		t.Errorf("turn 1 = %+v", got[1])
	}
	if !reflect.DeepEqual(got[1].Strategies, []string{"情緒驗證"}) {
		t.Errorf("turn 1 strategies = %v", got[1].Strategies)
	}
	if got[2].Speaker != Subject || got[2].RiskScore == nil || *got[2].RiskScore != 0 {
		t.Errorf("turn 2 = %+v", got[2])
	}
}

func TestBuildTurns_DropsBlankLinesBeforeIndexing(t *testing.T) {
	got := BuildTurns([]string{"A", "", "  ", "B"}, Config{})
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}
	if got[0].Index != 0 || got[0].Text != "A" {
		t.Errorf("turn 0 = %+v", got[0])
	}
	if got[1].Index != 1 || got[1].Text != "B" {
		t.Errorf("turn 1 = %+v", got[1])
	}
}

func TestBuildTurns_TrimsText(t *testing.T) {
	got := BuildTurns([]string{"  謝謝你願意 \t"}, scenarioConfig())
	if len(got) != 1 || got[0].Text != "謝謝你願意" {
		t.Fatalf("unexpected turns: %+v", got)
	}
	if got[0].Strategies == nil {
		t.Error("responder turn should have a non-nil strategy slice")
	}
}

func TestBuildTurns_Empty(t *testing.T) {
	got := BuildTurns(nil, scenarioConfig())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil turns, got %#v", got)
	}
}

func TestBuildTurns_Idempotent(t *testing.T) {
	lines := []string{"我想死", "謝謝你願意，我理解", "", "還好"}
	cfg := scenarioConfig()

	first := BuildTurns(lines, cfg)
	second := BuildTurns(lines, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildTurns is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestBuildLabelledTurns(t *testing.T) {
	msgs := []Message{
		{Speaker: Subject, Text: "我想死"},
		{Speaker: Responder, Text: "   "},
		// A marker phrase on a subject message does not flip the speaker.
		{Speaker: Subject, Text: "謝謝你願意聽"},
		{Speaker: Responder, Text: "我理解"},
	}

	got := BuildLabelledTurns(msgs, scenarioConfig())
	if len(got) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(got))
	}
	if got[1].Index != 1 || got[1].Speaker != Subject || *got[1].RiskScore != 0 {
		t.Errorf("turn 1 = %+v", got[1])
	}
	if got[2].Speaker != Responder || !reflect.DeepEqual(got[2].Strategies, []string{"情緒驗證"}) {
		t.Errorf("turn 2 = %+v", got[2])
	}
}
