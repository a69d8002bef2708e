package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/cgint/pi-session-to-md/internal/config"
	"github.com/cgint/pi-session-to-md/internal/export"
	"github.com/cgint/pi-session-to-md/internal/transcript"
)

// newRootCmd builds the root command with fresh flag state, so tests can
// execute it repeatedly without flags leaking between runs.
func newRootCmd() *cobra.Command {
	var (
		outputPath   string
		exportMode   string
		leafID       string
		noThinking   bool
		includeBash  bool
		timestamps   bool
		noGroupTurns bool
	)

	root := &cobra.Command{
		Use:          "pi-session-to-md <session.jsonl>",
		Short:        "Convert a pi-coding-agent session JSONL file to conversation-first Markdown",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			global, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("loading global config: %w", err)
			}
			project, err := config.LoadProject()
			if err != nil {
				return fmt.Errorf("loading project config: %w", err)
			}
			settings := config.Merge(global, project)

			mode, err := export.ParseMode(exportMode)
			if err != nil {
				return err
			}
			style, err := export.ParseThinkingStyle(settings.Thinking)
			if err != nil {
				return err
			}

			// Flags the user set explicitly win over config file values;
			// untouched flags leave the merged settings alone.
			if cmd.Flags().Changed("no-thinking") {
				style = export.ThinkingDetails
				if noThinking {
					style = export.ThinkingOmit
				}
			}
			if cmd.Flags().Changed("include-bash") {
				settings.IncludeBash = includeBash
			}
			if cmd.Flags().Changed("timestamps") {
				settings.Timestamps = timestamps
			}
			if cmd.Flags().Changed("no-group-turns") {
				settings.GroupTurns = !noGroupTurns
			}

			opts := export.Options{
				Mode:        mode,
				LeafID:      leafID,
				Thinking:    style,
				IncludeBash: settings.IncludeBash,
				Timestamps:  settings.Timestamps,
				GroupTurns:  settings.GroupTurns,
			}

			f, err := os.Open(inputPath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("input file not found: %s", inputPath)
				}
				return err
			}
			recs, readErr := transcript.ReadAll(f)
			f.Close()
			if readErr != nil {
				return fmt.Errorf("%s: %w", inputPath, readErr)
			}

			doc, err := export.Generate(inputPath, transcript.BuildIndex(recs), opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd, doc, outputPath, settings.OutputDir)
		},
	}

	root.Flags().StringVarP(&outputPath, "output", "o", "-", "Output file path ('-' for stdout)")
	root.Flags().StringVar(&exportMode, "mode", "all", "Export the full file ('all') or a single parentId chain ('branch')")
	root.Flags().StringVar(&leafID, "leaf", "", "Leaf id for branch mode (defaults to the last message id)")
	root.Flags().BoolVar(&noThinking, "no-thinking", false, "Do not include assistant thinking blocks")
	root.Flags().BoolVar(&includeBash, "include-bash", false, "Include bashExecution entries as SYSTEM blocks")
	root.Flags().BoolVar(&timestamps, "timestamps", false, "Include timestamps")
	root.Flags().BoolVar(&noGroupTurns, "no-group-turns", false, "Do not merge consecutive messages by role")

	return root
}

// writeOutput writes the fully assembled document. Nothing touches the
// filesystem before this point, so a fatal failure never leaves a partial
// file behind.
func writeOutput(cmd *cobra.Command, doc, path, baseDir string) error {
	if path == "-" {
		if term.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprintln(cmd.ErrOrStderr(), "hint: writing Markdown to a terminal; use -o to save to a file")
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), doc)
		return err
	}

	if !filepath.IsAbs(path) && baseDir != "" && baseDir != "." {
		path = filepath.Join(baseDir, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
