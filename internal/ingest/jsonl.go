package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// chatLine is one line of a JSONL chat export. Both the flat shape
// {"role","content"} and the envelope shape {"type":"message","message":{...}}
// are accepted. The timestamp may be an RFC3339 string or a Unix epoch.
type chatLine struct {
	Type      string          `json:"type"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
	Message   *chatMessage    `json:"message"`
}

type chatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// textPart is one element of an array-valued content field. Only parts with
// text contribute to the turn; images and tool calls are ignored.
type textPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseJSONL parses a JSONL chat export into speaker-labelled messages.
// Malformed lines and roles other than user/assistant are skipped. When every
// kept line has a parseable timestamp the messages are ordered by it.
func ParseJSONL(path string) ([]turns.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	type parsed struct {
		msg turns.Message
		ts  time.Time
	}
	var items []parsed
	allStamped := true

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	for scanner.Scan() {
		var line chatLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue // skip malformed lines
		}

		role, content := line.Role, line.Content
		if line.Message != nil {
			if line.Type != "" && line.Type != "message" {
				continue
			}
			role, content = line.Message.Role, line.Message.Content
		}

		var spk turns.Speaker
		switch role {
		case "user", "human":
			spk = turns.Subject
		case "assistant", "model":
			spk = turns.Responder
		default:
			continue
		}

		text := strings.TrimSpace(contentText(content))
		if text == "" {
			continue
		}

		ts, ok := parseTimestamp(line.Timestamp)
		if !ok {
			allStamped = false
		}
		items = append(items, parsed{msg: turns.Message{Speaker: spk, Text: text}, ts: ts})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if allStamped {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ts.Before(items[j].ts)
		})
	}

	msgs := make([]turns.Message, len(items))
	for i, it := range items {
		msgs[i] = it.msg
	}
	return msgs, nil
}

// parseTimestamp accepts an RFC3339 string, or a Unix epoch in seconds or
// milliseconds, either bare or quoted.
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, true
		}
		raw = json.RawMessage(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return time.Time{}, false
	}
	f, err := n.Float64()
	if err != nil || f <= 0 {
		return time.Time{}, false
	}
	// Values past 1e11 cannot be seconds within this millennium.
	if f > 1e11 {
		return time.UnixMilli(int64(f)), true
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9)), true
}

// contentText flattens a content field into one turn. A string is used as
// is; in a part array, every text part becomes its own line so the pipeline
// sees the same text a reader would.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var parts []textPart
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type != "" && p.Type != "text" {
			continue
		}
		if t := strings.TrimSpace(p.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
