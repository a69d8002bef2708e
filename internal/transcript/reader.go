package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// maxLineSize bounds a single JSONL line. Sessions with large pasted
// content routinely exceed bufio's default limit.
const maxLineSize = 10 * 1024 * 1024

// ReadAll parses a session JSONL stream into records. Blank lines are
// skipped. A line that is not valid JSON aborts the read, reporting the
// 1-based line number. A valid JSON line that is not an object is ignored.
func ReadAll(r io.Reader) ([]*Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var recs []*Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, err)
		}
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		recs = append(recs, recordFromMap(obj))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return recs, nil
}

func recordFromMap(m map[string]any) *Record {
	rec := &Record{
		Type:      stringField(m, "type"),
		ID:        stringField(m, "id"),
		ParentID:  stringField(m, "parentId"),
		Cwd:       stringField(m, "cwd"),
		Timestamp: ParseTimestamp(stringField(m, "timestamp")),
	}
	if msg, ok := m["message"].(map[string]any); ok {
		rec.Message = messageFromMap(msg)
	}
	return rec
}

func messageFromMap(m map[string]any) *Message {
	msg := &Message{
		Role:    stringField(m, "role"),
		Command: stringField(m, "command"),
		Output:  stringField(m, "output"),
	}
	switch content := m["content"].(type) {
	case string:
		msg.Content = []ContentItem{{Kind: KindText, Text: content}}
	case []any:
		for _, item := range content {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			switch stringField(obj, "type") {
			case "text":
				msg.Content = append(msg.Content, ContentItem{Kind: KindText, Text: stringField(obj, "text")})
			case "thinking":
				msg.Content = append(msg.Content, ContentItem{Kind: KindThinking, Text: stringField(obj, "thinking")})
			default:
				msg.Content = append(msg.Content, ContentItem{Kind: KindOther})
			}
		}
	}
	return msg
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// ParseTimestamp parses a pi timestamp such as "2026-02-19T08:37:11.936Z".
// It returns the zero time when the value cannot be parsed.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
