package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// Result is everything produced for one analyzed transcript.
type Result struct {
	RunID       uuid.UUID     `json:"run_id"`
	Source      string        `json:"source"`
	RuleSet     string        `json:"rule_set"`
	GeneratedAt time.Time     `json:"generated_at"`
	Turns       []turns.Turn  `json:"turns"`
	Summary     turns.Summary `json:"summary"`
}

// NewResult stamps classified turns with a fresh run id and their summary.
func NewResult(source, ruleSet string, ts []turns.Turn) Result {
	return Result{
		RunID:       uuid.New(),
		Source:      source,
		RuleSet:     ruleSet,
		GeneratedAt: time.Now().UTC(),
		Turns:       ts,
		Summary:     turns.Summarize(ts),
	}
}

// Paths are the files written for a result.
type Paths struct {
	Dir      string
	Markdown string
	JSON     string
}

// Write creates <root>/run_<timestamp>_<id>/ holding report.md and result.json.
func Write(root string, res Result) (Paths, error) {
	name := fmt.Sprintf("run_%s_%s", res.GeneratedAt.Format("20060102-150405"), res.RunID.String()[:8])
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("mkdir: %w", err)
	}

	p := Paths{
		Dir:      dir,
		Markdown: filepath.Join(dir, "report.md"),
		JSON:     filepath.Join(dir, "result.json"),
	}

	var title string
	if res.Source != "" {
		title = filepath.Base(res.Source)
	}
	if err := os.WriteFile(p.Markdown, []byte(Markdown(title, res.Summary)), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write report: %w", err)
	}
	if err := writeJSON(p.JSON, res); err != nil {
		return Paths{}, fmt.Errorf("write result: %w", err)
	}
	return p, nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
