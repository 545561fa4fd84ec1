package rules

import (
	"fmt"
	"sort"
)

// DefaultPreset is used when no rule set is configured.
const DefaultPreset = "gemini"

var presets = map[string]RuleSet{
	// Paragraph-level analysis of an exported Gemini conversation.
	"gemini": {
		Name: "gemini",
		Markers: []string{
			"我想輕輕地對你說",
			"你做得很好",
			"謝謝你願意",
			"我會在這裡",
			"請你試試看",
			"這不是你的錯",
			"溫馨提醒",
		},
		Tiers: []Tier{
			{Score: 3, Pattern: `(列遺書|想自殺|要自殺|去死|跳海|怎麼死)`},
			{Score: 2, Pattern: `(想死|結束生命|死亡日期)`},
			{Score: 1, Pattern: `(一閃而過|沒有動力去死|淡淡的想死)`},
		},
		Strategies: []Strategy{
			{Tag: "情緒驗證", Patterns: []string{`我理解`, `很痛`, `你承受了`, `謝謝你願意`}},
			{Tag: "自我慈悲 / 再撫育", Patterns: []string{`抱抱`, `疼你自己`, `對自己溫柔`}},
			{Tag: "正念 / 距離化", Patterns: []string{`看著這個念頭`, `讓它來去`, `不用跟它打架`}},
			{Tag: "身體接地", Patterns: []string{`呼吸`, `胸口`, `靠著`, `擁抱`, `安全感`}},
			{Tag: "行動化", Patterns: []string{`去走走`, `吃`, `洗澡`, `關機`, `寫信`}},
			{Tag: "安全規劃", Patterns: []string{`看醫師`, `門診`, `求助`, `個管師`}},
		},
	},
	// Exploratory variant with English strategy ids and broader cues.
	"report": {
		Name: "report",
		Markers: []string{
			"謝謝你願意",
			"我想輕輕地對你說",
			"你做得非常好",
			"這是一個",
			"請你",
			"我會一直在這裡",
			"溫馨提醒",
			"你真的很棒",
		},
		Tiers: []Tier{
			{Score: 3, Pattern: `(列遺書|想自殺|要自殺|我去死|去死|跳海|怎樣死最不痛苦)`},
			{Score: 2, Pattern: `(想死|想結束生命|死亡定個日期)`},
			{Score: 1, Pattern: `(一閃而過|閃過|淡淡的.*想死|可以去死但沒有動力)`},
		},
		Strategies: []Strategy{
			{Tag: "validation", Patterns: []string{`我理解`, `很正常`, `謝謝你願意`, `我聽到了`}},
			{Tag: "mindfulness_decentering", Patterns: []string{`看著`, `同在`, `來了.*又走了`, `只是呼吸`}},
			{Tag: "grounding_somatic", Patterns: []string{`呼吸`, `胸口`, `蝴蝶擁抱`, `迷走神經`, `接地`}},
			{Tag: "behavior_activation", Patterns: []string{`去走走`, `吃`, `洗澡`, `關機`, `出門`, `發信`}},
			{Tag: "safety_planning", Patterns: []string{`尋求專業協助`, `門診`, `個管師`, `EMDR`, `熱線`}},
			{Tag: "reframing", Patterns: []string{`不是.*想要結束生命`, `其實是.*結束痛苦`, `這是在保護你`}},
			{Tag: "self_compassion_reparenting", Patterns: []string{`抱抱`, `疼你自己`, `內在小孩`, `擁抱自己`}},
		},
	},
	// Speaker-labelled transcripts ("User:" / "Gemini:"), so no markers.
	"effect": {
		Name: "effect",
		Tiers: []Tier{
			{Score: 3, Pattern: `(想自殺|要自殺|怎麼死)`},
			{Score: 2, Pattern: `(想死|不想活)`},
			{Score: 1, Pattern: `(一閃而過|偶爾想到死)`},
		},
		Strategies: []Strategy{
			{Tag: "情緒驗證", Patterns: []string{`謝謝你願意`, `不容易`, `我理解`}},
			{Tag: "正念距離化", Patterns: []string{`不用跟它打架`, `看著它`}},
			{Tag: "自我慈悲", Patterns: []string{`陪著自己`, `溫柔`}},
		},
	},
	// Risk scoring only; every line is treated as the subject's.
	"lines": {
		Name: "lines",
		Tiers: []Tier{
			{Score: 3, Pattern: `(想自殺|要自殺|列遺書|怎麼死|跳下去)`},
			{Score: 2, Pattern: `(想死|結束生命|死亡日期|如果我消失)`},
			{Score: 1, Pattern: `(一閃而過|偶爾想到死|淡淡的想死)`},
		},
	},
}

// Preset returns a copy of a built-in rule set.
func Preset(name string) (*RuleSet, error) {
	rs, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return rs.clone(), nil
}

// PresetNames lists the built-in rule sets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the rule set for a run: a rules file wins over a preset name,
// and an empty preset name means DefaultPreset.
func Resolve(preset, file string) (*RuleSet, error) {
	if file != "" {
		return LoadFile(file)
	}
	if preset == "" {
		preset = DefaultPreset
	}
	return Preset(preset)
}

func (rs RuleSet) clone() *RuleSet {
	out := RuleSet{
		Name:    rs.Name,
		Markers: append([]string(nil), rs.Markers...),
		Tiers:   append([]Tier(nil), rs.Tiers...),
	}
	for _, s := range rs.Strategies {
		out.Strategies = append(out.Strategies, Strategy{Tag: s.Tag, Patterns: append([]string(nil), s.Patterns...)})
	}
	return &out
}
