package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

const previewRunes = 40

// Console prints the turn table followed by the list of score drops.
func Console(w io.Writer, ts []turns.Turn, s turns.Summary) error {
	fmt.Fprintln(w, "\n=== 分析結果 ===")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "turn\tspeaker\tsi\tstrategies\ttext")
	for _, t := range ts {
		si := "-"
		if t.RiskScore != nil {
			si = fmt.Sprintf("%d", *t.RiskScore)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.Index, t.Speaker, si, strings.Join(t.Strategies, ","), preview(t.Text))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== 摘要 ===")
	fmt.Fprintf(w, "最高風險等級: %s\n", scoreText(s.MaxScore))
	fmt.Fprintf(w, "最後風險等級: %s\n", scoreText(s.LastScore))

	fmt.Fprintln(w, "\n📉 自殺意念下降事件：")
	fmt.Fprintln(w)
	if len(s.TurningPoints) == 0 {
		_, err := fmt.Fprintln(w, "(無)")
		return err
	}
	for _, tp := range s.TurningPoints {
		fmt.Fprintf(w, "- Turn %d: SI %d → %d\n", tp.TurnIndex, tp.PreviousScore, tp.CurrentScore)
		if _, err := fmt.Fprintf(w, "  回應策略: [%s]\n", strings.Join(tp.Strategies, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func preview(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes]) + "…"
}
