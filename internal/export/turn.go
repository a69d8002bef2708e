package export

import (
	"strings"
	"time"

	"github.com/cgint/pi-session-to-md/internal/transcript"
)

// Turn is one rendered unit of output: one or more consecutive same-role
// messages merged together. Text is the joined narration; Thinking holds
// the assistant's reasoning segments in order.
type Turn struct {
	Role     string
	Text     string
	Thinking []string
	TsFirst  time.Time
	TsLast   time.Time
}

// extractContent splits a message's content items into joined narration
// text and the list of reasoning segments. Empty items and unknown kinds
// are skipped.
func extractContent(items []transcript.ContentItem) (text string, thinking []string) {
	var textParts []string
	for _, item := range items {
		t := strings.TrimSpace(item.Text)
		if t == "" {
			continue
		}
		switch item.Kind {
		case transcript.KindText:
			textParts = append(textParts, t)
		case transcript.KindThinking:
			thinking = append(thinking, t)
		}
	}
	return strings.Join(textParts, "\n\n"), thinking
}

// groupState is the turn accumulator's state: idle until a qualifying
// message arrives, then accumulating under that message's role until a
// flush returns it to idle.
type groupState int

const (
	stateIdle groupState = iota
	stateAccumulating
)

type turnBuilder struct {
	state     groupState
	role      string
	textParts []string
	thinking  []string
	tsFirst   time.Time
	tsLast    time.Time
}

// add extends the pending turn with one message's extracted content. The
// first non-zero timestamp becomes tsFirst; every later one updates tsLast.
func (b *turnBuilder) add(role, text string, thinking []string, ts time.Time) {
	if b.state == stateIdle {
		b.state = stateAccumulating
		b.role = role
	}
	if !ts.IsZero() {
		if b.tsFirst.IsZero() {
			b.tsFirst = ts
		}
		b.tsLast = ts
	}
	if text != "" {
		b.textParts = append(b.textParts, text)
	}
	if role == "assistant" {
		b.thinking = append(b.thinking, thinking...)
	}
}

// flush finalizes the pending turn and resets the builder to idle. It
// returns nil when idle or when the turn would render with nothing to say.
func (b *turnBuilder) flush() *Turn {
	if b.state == stateIdle {
		return nil
	}
	turn := &Turn{
		Role:     b.role,
		Text:     strings.TrimSpace(strings.Join(b.textParts, "\n\n")),
		Thinking: b.thinking,
		TsFirst:  b.tsFirst,
		TsLast:   b.tsLast,
	}
	*b = turnBuilder{}

	if turn.Role == "user" && turn.Text == "" {
		return nil
	}
	if turn.Role == "assistant" && turn.Text == "" && len(turn.Thinking) == 0 {
		return nil
	}
	return turn
}
