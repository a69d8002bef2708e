package transcript

import "time"

// ContentKind discriminates the payload of a ContentItem.
type ContentKind int

const (
	// KindText is user-facing narration.
	KindText ContentKind = iota
	// KindThinking is assistant internal reasoning.
	KindThinking
	// KindOther covers tool calls, images and anything newer than this tool.
	KindOther
)

// ContentItem is one typed element of a message content list.
type ContentItem struct {
	Kind ContentKind
	Text string
}

// Message is the payload of a type=="message" record. For the
// bashExecution role the command and output are carried directly instead
// of a content list.
type Message struct {
	Role    string
	Content []ContentItem
	Command string
	Output  string
}

// Record is a typed view over one parsed line of a session file. Fields
// that are absent from the JSON or carry an unexpected type read as zero
// values; Timestamp is the zero time when missing or unparseable.
type Record struct {
	Type      string
	ID        string
	ParentID  string
	Cwd       string
	Timestamp time.Time
	Message   *Message
}
