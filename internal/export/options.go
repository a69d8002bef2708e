package export

import "fmt"

// Mode selects whole-file vs single-branch export.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeBranch Mode = "branch"
)

// ParseMode validates a mode string from the CLI or a config file.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAll, ModeBranch:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode: %q (want \"all\" or \"branch\")", s)
}

// ThinkingStyle controls how assistant reasoning is rendered.
type ThinkingStyle string

const (
	// ThinkingDetails wraps a turn's reasoning in one collapsible
	// <details> block of blockquotes.
	ThinkingDetails ThinkingStyle = "details"
	// ThinkingOmit drops reasoning entirely.
	ThinkingOmit ThinkingStyle = "omit"
)

// ParseThinkingStyle validates a thinking style string.
func ParseThinkingStyle(s string) (ThinkingStyle, error) {
	switch ThinkingStyle(s) {
	case ThinkingDetails, ThinkingOmit:
		return ThinkingStyle(s), nil
	}
	return "", fmt.Errorf("invalid thinking style: %q (want \"details\" or \"omit\")", s)
}

// Options holds the formatting knobs for one export run.
type Options struct {
	Mode        Mode
	LeafID      string // branch mode only; empty means auto-resolve
	Thinking    ThinkingStyle
	IncludeBash bool
	Timestamps  bool
	GroupTurns  bool
}
