package transcript

import (
	"strings"
	"testing"
	"time"
)

func TestReadAllSkipsBlankAndNonObjectLines(t *testing.T) {
	input := `{"type":"message","id":"a"}

123
"just a string"
{"type":"message","id":"b"}
`
	recs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "a" || recs[1].ID != "b" {
		t.Errorf("unexpected ids: %q, %q", recs[0].ID, recs[1].ID)
	}
}

func TestReadAllReportsLineNumberOnBadJSON(t *testing.T) {
	input := "{\"type\":\"session\"}\n{\"type\":\"message\"\n"
	_, err := ReadAll(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for malformed JSON, got nil")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error to name line 2, got: %q", err.Error())
	}
}

func TestReadAllToleratesWrongFieldTypes(t *testing.T) {
	// A numeric id or object timestamp is valid JSON; the fields just read
	// as absent instead of failing the whole run.
	input := `{"type":"message","id":5,"timestamp":{"weird":true}}`
	recs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].ID != "" {
		t.Errorf("expected empty id, got %q", recs[0].ID)
	}
	if !recs[0].Timestamp.IsZero() {
		t.Errorf("expected zero timestamp, got %v", recs[0].Timestamp)
	}
}

func TestMessageContentString(t *testing.T) {
	input := `{"type":"message","id":"m1","message":{"role":"user","content":"hello"}}`
	recs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	msg := recs[0].Message
	if msg == nil {
		t.Fatal("expected a message")
	}
	if msg.Role != "user" {
		t.Errorf("role: got %q, want %q", msg.Role, "user")
	}
	if len(msg.Content) != 1 || msg.Content[0].Kind != KindText || msg.Content[0].Text != "hello" {
		t.Errorf("unexpected content: %+v", msg.Content)
	}
}

func TestMessageContentList(t *testing.T) {
	input := `{"type":"message","id":"m1","message":{"role":"assistant","content":[` +
		`{"type":"thinking","thinking":"hmm"},` +
		`{"type":"text","text":"hi"},` +
		`{"type":"toolCall","id":"t1"}]}}`
	recs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	content := recs[0].Message.Content
	if len(content) != 3 {
		t.Fatalf("expected 3 content items, got %d", len(content))
	}
	want := []ContentItem{
		{Kind: KindThinking, Text: "hmm"},
		{Kind: KindText, Text: "hi"},
		{Kind: KindOther},
	}
	for i, w := range want {
		if content[i] != w {
			t.Errorf("content[%d]: got %+v, want %+v", i, content[i], w)
		}
	}
}

func TestBashExecutionFields(t *testing.T) {
	input := `{"type":"message","id":"b1","message":{"role":"bashExecution","command":"ls -la","output":"total 0\n"}}`
	recs, err := ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	msg := recs[0].Message
	if msg.Role != "bashExecution" {
		t.Errorf("role: got %q", msg.Role)
	}
	if msg.Command != "ls -la" {
		t.Errorf("command: got %q", msg.Command)
	}
	if msg.Output != "total 0\n" {
		t.Errorf("output: got %q", msg.Output)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-02-19T08:37:11.936Z", time.Date(2026, 2, 19, 8, 37, 11, 936000000, time.UTC)},
		{"2026-02-19T08:37:11Z", time.Date(2026, 2, 19, 8, 37, 11, 0, time.UTC)},
		{"2026-02-19T08:37:11", time.Date(2026, 2, 19, 8, 37, 11, 0, time.UTC)},
		{"not-a-timestamp", time.Time{}},
		{"", time.Time{}},
	}
	for _, tc := range cases {
		got := ParseTimestamp(tc.in)
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
