package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

const noData = "無資料"

// Markdown renders the analysis report for one conversation.
func Markdown(title string, s turns.Summary) string {
	var sb strings.Builder

	if title == "" {
		title = "對話"
	}
	fmt.Fprintf(&sb, "# %s 危機介入分析報告\n\n", title)

	sb.WriteString("## 一、整體風險變化\n\n")
	fmt.Fprintf(&sb, "- 使用者發言數：%d，回應者發言數：%d\n", s.SubjectTurns, s.ResponderTurns)
	fmt.Fprintf(&sb, "- 使用者最高自殺意念強度：**%s**\n", scoreText(s.MaxScore))
	fmt.Fprintf(&sb, "- 最後自殺意念強度：**%s**\n\n", scoreText(s.LastScore))

	sb.WriteString("## 二、關鍵轉折點\n\n")
	if len(s.TurningPoints) == 0 {
		sb.WriteString("- ⚠️ 未偵測到明確下降轉折\n")
	} else {
		for _, tp := range s.TurningPoints {
			fmt.Fprintf(&sb, "- Turn %d：自殺意念下降（%d → %d）\n", tp.TurnIndex, tp.PreviousScore, tp.CurrentScore)
			if len(tp.Strategies) > 0 {
				fmt.Fprintf(&sb, "  - 前一段回應使用策略：%s\n", strings.Join(tp.Strategies, ", "))
			}
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## 三、回應者使用的主要介入策略\n\n")
	if len(s.StrategyCounts) == 0 {
		sb.WriteString("- 未偵測到介入策略\n")
	}
	for _, c := range s.StrategyCounts {
		fmt.Fprintf(&sb, "- %s：%d 次\n", c.Tag, c.Count)
	}

	if pre := precedingCounts(s.TurningPoints); len(pre) > 0 {
		sb.WriteString("\n## 四、轉折點前出現的策略\n\n")
		for _, c := range pre {
			fmt.Fprintf(&sb, "- %s：%d 次\n", c.Tag, c.Count)
		}
	}

	return sb.String()
}

func scoreText(p *int) string {
	if p == nil {
		return noData
	}
	return fmt.Sprintf("%d", *p)
}

// precedingCounts tallies the strategies attached to turning points.
func precedingCounts(points []turns.TurningPoint) []turns.StrategyCount {
	counts := make(map[string]int)
	for _, tp := range points {
		for _, tag := range tp.Strategies {
			counts[tag]++
		}
	}

	out := make([]turns.StrategyCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, turns.StrategyCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
