package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cgint/pi-session-to-md/internal/transcript"
)

// Generate renders the selected records of idx as a single Markdown
// document. In all mode every record is considered in arrival order; in
// branch mode only the resolved parentId chain is. Fatal conditions are an
// invalid mode and an unresolvable leaf.
func Generate(sourcePath string, idx *transcript.Index, opts Options) (string, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return "", err
	}

	selected := idx.Records
	branchLeaf := ""
	if opts.Mode == ModeBranch {
		leaf, err := transcript.ResolveLeaf(idx, opts.LeafID)
		if err != nil {
			return "", err
		}
		selected = transcript.Chain(idx, leaf)
		branchLeaf = leaf
	}

	var out []string
	out = append(out, header(sourcePath, idx.Meta, branchLeaf, opts)...)

	emit := func(block string) {
		out = append(out, strings.TrimRight(block, " \t\n"), "")
	}

	var pending turnBuilder
	flush := func() {
		if turn := pending.flush(); turn != nil {
			emit(formatTurn(turn, opts))
		}
	}

	for _, rec := range selected {
		if rec.Type != "message" || rec.Message == nil {
			continue
		}
		msg := rec.Message
		role := msg.Role

		if role != "user" && role != "assistant" {
			// bashExecution breaks grouping intentionally; other roles
			// are skipped for forward compatibility.
			if role == "bashExecution" && opts.IncludeBash {
				flush()
				emit(formatBash(rec, opts))
			}
			continue
		}

		text, thinking := extractContent(msg.Content)
		if role == "user" && text == "" {
			continue
		}
		if role == "assistant" && text == "" && len(thinking) == 0 {
			continue
		}
		if role != "assistant" {
			thinking = nil
		}

		if !opts.GroupTurns {
			flush()
			emit(formatTurn(&Turn{
				Role:     role,
				Text:     text,
				Thinking: thinking,
				TsFirst:  rec.Timestamp,
				TsLast:   rec.Timestamp,
			}, opts))
			continue
		}

		if pending.state == stateAccumulating && pending.role != role {
			flush()
		}
		pending.add(role, text, thinking, rec.Timestamp)
	}
	flush()

	return strings.TrimRight(strings.Join(out, "\n"), " \t\n") + "\n", nil
}

// header builds the document title and metadata block. Each metadata
// bullet appears only when the value is known or applicable.
func header(sourcePath string, meta transcript.SessionMeta, branchLeaf string, opts Options) []string {
	var out []string
	out = append(out, "# PI session (conversation) — "+filepath.Base(sourcePath), "")
	if meta.SessionID != "" {
		out = append(out, fmt.Sprintf("- id: `%s`", meta.SessionID))
	}
	if !meta.StartedAt.IsZero() {
		out = append(out, fmt.Sprintf("- started: `%s`", meta.StartedAt.Format(time.RFC3339Nano)))
	}
	if meta.Cwd != "" {
		out = append(out, fmt.Sprintf("- cwd: `%s`", meta.Cwd))
	}
	out = append(out, fmt.Sprintf("- source: `%s`", sourcePath))
	out = append(out, fmt.Sprintf("- mode: `%s`", opts.Mode))
	if branchLeaf != "" {
		out = append(out, "- leaf: "+branchLeaf)
	}
	out = append(out, fmt.Sprintf("- thinking: `%s`", opts.Thinking))
	group := "off"
	if opts.GroupTurns {
		group = "on"
	}
	out = append(out, fmt.Sprintf("- group_turns: `%s`", group))
	if opts.Timestamps {
		out = append(out, "- timestamps: `on`")
	}
	out = append(out, "", "---", "")
	return out
}

func formatTurn(turn *Turn, opts Options) string {
	label := "ASSISTANT"
	if turn.Role == "user" {
		label = "USER"
	}

	var lines []string
	lines = append(lines, "### "+label, "")

	if opts.Timestamps && !turn.TsFirst.IsZero() {
		if !turn.TsLast.IsZero() && !turn.TsLast.Equal(turn.TsFirst) {
			lines = append(lines, fmt.Sprintf("_timestamps: %s … %s_",
				turn.TsFirst.Format(time.RFC3339Nano), turn.TsLast.Format(time.RFC3339Nano)))
		} else {
			lines = append(lines, fmt.Sprintf("_timestamp: %s_", turn.TsFirst.Format(time.RFC3339Nano)))
		}
		lines = append(lines, "")
	}

	if turn.Text != "" {
		lines = append(lines, strings.TrimRight(turn.Text, " \t\n"))
	} else if len(turn.Thinking) == 0 {
		// Filtering upstream should make this unreachable.
		lines = append(lines, "(no content)")
	}

	if turn.Role == "assistant" && opts.Thinking == ThinkingDetails {
		if block := thinkingBlock(turn.Thinking); block != "" {
			lines = append(lines, block, "")
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// thinkingBlock wraps all reasoning segments of one turn in a single
// <details> disclosure. Each segment becomes its own blockquote; segments
// are separated by a truly empty line (no ">") so the quote visually
// breaks between them.
func thinkingBlock(segments []string) string {
	var parts []string
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		parts = append(parts, blockquote(strings.TrimRight(seg, " \t\n")))
	}
	if len(parts) == 0 {
		return ""
	}
	return "<details>\n<summary>thinking</summary>\n\n" + strings.Join(parts, "\n\n") + "\n\n</details>"
}

// blockquote prefixes every line with "> ". Whitespace-only lines become a
// bare ">" so paragraph breaks survive inside the quote.
func blockquote(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

func formatBash(rec *transcript.Record, opts Options) string {
	msg := rec.Message

	var lines []string
	lines = append(lines, "### SYSTEM (bashExecution)", "")
	if opts.Timestamps && !rec.Timestamp.IsZero() {
		lines = append(lines, fmt.Sprintf("_timestamp: %s_", rec.Timestamp.Format(time.RFC3339Nano)), "")
	}
	if strings.TrimSpace(msg.Command) != "" {
		lines = append(lines, "Command:", "```bash", strings.TrimRight(msg.Command, " \t\n"), "```", "")
	}
	if strings.TrimSpace(msg.Output) != "" {
		lines = append(lines, "Output:", "```text", strings.TrimRight(msg.Output, "\n"), "```", "")
	}
	return strings.Join(lines, "\n")
}
