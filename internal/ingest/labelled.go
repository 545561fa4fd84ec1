package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// Aliases maps a speaker label, as written in a transcript, to a speaker.
type Aliases map[string]turns.Speaker

// DefaultAliases covers the labels used by exported chat transcripts.
func DefaultAliases() Aliases {
	return Aliases{
		"User":      turns.Subject,
		"user":      turns.Subject,
		"使用者":       turns.Subject,
		"我":         turns.Subject,
		"Gemini":    turns.Responder,
		"gemini":    turns.Responder,
		"Assistant": turns.Responder,
		"assistant": turns.Responder,
		"AI":        turns.Responder,
	}
}

// ParseAliases reads "label=subject|responder" pairs, e.g. from a CLI flag.
func ParseAliases(pairs []string) (Aliases, error) {
	out := Aliases{}
	for _, p := range pairs {
		label, role, ok := strings.Cut(p, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return nil, fmt.Errorf("alias %q: want label=subject|responder", p)
		}
		switch strings.ToLower(strings.TrimSpace(role)) {
		case "subject":
			out[label] = turns.Subject
		case "responder":
			out[label] = turns.Responder
		default:
			return nil, fmt.Errorf("alias %q: unknown speaker %q", p, role)
		}
	}
	return out, nil
}

// ParseLabelled reads "Speaker: text" lines. Both ASCII and full-width colons
// separate the label. Blank lines are skipped; a line with no label or an
// unknown label is an error. aliases extend and override DefaultAliases.
func ParseLabelled(r io.Reader, aliases Aliases) ([]turns.Message, error) {
	labels := DefaultAliases()
	for label, spk := range aliases {
		labels[label] = spk
	}

	msgs := []turns.Message{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" {
			continue
		}

		label, text, ok := splitLabel(line)
		if !ok {
			return nil, fmt.Errorf("line %d: missing speaker label", lineNo)
		}
		spk, known := labels[label]
		if !known {
			return nil, fmt.Errorf("line %d: unknown speaker %q", lineNo, label)
		}
		msgs = append(msgs, turns.Message{Speaker: spk, Text: strings.TrimSpace(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return msgs, nil
}

// splitLabel splits on whichever colon comes first.
func splitLabel(line string) (label, text string, ok bool) {
	i := strings.Index(line, ":")
	if j := strings.Index(line, "："); j >= 0 && (i < 0 || j < i) {
		return strings.TrimSpace(line[:j]), line[j+len("："):], true
	}
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), line[i+1:], true
}
