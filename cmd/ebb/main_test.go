package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/ebb/internal/config"
)

func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cfg)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func testConfig(out string) config.Config {
	return config.Config{LogLevel: "error", Rules: "gemini", OutputDir: out}
}

func writeTranscript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const transcript = "我今天想死\n謝謝你願意說出來，我理解你的痛苦\n我後來去洗澡，感覺好一點\n"

func TestAnalyze_WritesReport(t *testing.T) {
	out := t.TempDir()
	path := writeTranscript(t, "chat.txt", transcript)

	stdout, err := run(t, testConfig(out), "analyze", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "report.md") {
		t.Errorf("stdout = %q", stdout)
	}

	matches, _ := filepath.Glob(filepath.Join(out, "run_*", "report.md"))
	if len(matches) != 1 {
		t.Fatalf("expected one report, got %v", matches)
	}
	md, _ := os.ReadFile(matches[0])
	if !strings.Contains(string(md), "Turn 2：自殺意念下降（2 → 0）") {
		t.Errorf("report:\n%s", md)
	}
}

func TestAnalyze_Print(t *testing.T) {
	path := writeTranscript(t, "chat.txt", transcript)

	stdout, err := run(t, testConfig(t.TempDir()), "analyze", "--print", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "- Turn 2: SI 2 → 0") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestAnalyze_DryRunPrintsMarkdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "outputs")
	path := writeTranscript(t, "chat.txt", "User: 我想死\nGemini: 不容易\nUser: 還好\n")

	stdout, err := run(t, testConfig(out), "analyze", "--dry-run", "--rules", "effect", "--format", "labelled", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "# chat.txt 危機介入分析報告") || !strings.Contains(stdout, "情緒驗證") {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("dry run wrote files")
	}
}

func TestAnalyze_Errors(t *testing.T) {
	path := writeTranscript(t, "chat.txt", transcript)

	if _, err := run(t, testConfig(t.TempDir()), "analyze", "--rules", "missing", path); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := run(t, testConfig(t.TempDir()), "analyze", "--alias", "bad", path); err == nil {
		t.Error("expected alias error")
	}
	if _, err := run(t, testConfig(t.TempDir()), "analyze", writeTranscript(t, "x.pdf", "")); err == nil {
		t.Error("expected unsupported format error")
	}
	if _, err := run(t, testConfig(t.TempDir()), "analyze"); err == nil {
		t.Error("expected argument error")
	}
}

func TestBatch(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "a.txt"), []byte(transcript), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := run(t, testConfig(t.TempDir()), "batch", "--dry-run", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Files analyzed: 1") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRules(t *testing.T) {
	stdout, err := run(t, testConfig(""), "rules")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "gemini (default)") || !strings.Contains(stdout, "lines") {
		t.Errorf("stdout = %q", stdout)
	}

	stdout, err = run(t, testConfig(""), "rules", "effect")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "name: effect") || !strings.Contains(stdout, "不想活") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a=subject, ,b=responder ")
	if len(got) != 2 || got[0] != "a=subject" || got[1] != "b=responder" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("expected nil for empty list")
	}
}
