package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"

	"github.com/harry-hov/docwriter/internal/docs"
	"github.com/harry-hov/docwriter/internal/env"
	"github.com/harry-hov/docwriter/internal/filehost"
)

// SourceCLI identifies the write command to the generate_docs service.
const SourceCLI = "cli"

func CmdWrite(configPath *string) *cobra.Command {
	var (
		file       string
		languageID string
		line, col  uint32
		endLine    uint32
		endCol     uint32
		rulers     []int
		inPlace    bool
		host       string
		port       int
	)
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Generate documentation for a line or span of a file",
		Long: `Generate documentation for the code at --line/--col of --file.

Without --end-line/--end-col the whole cursor line is documented. Lines and
columns are zero-based. The result is printed unless --in-place is given.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := env.Load(*configPath)
			if err != nil {
				return err
			}
			if err := applyServiceFlags(cmd, env, host, port); err != nil {
				return err
			}

			doc, err := filehost.Open(file, languageID)
			if err != nil {
				return err
			}

			start := protocol.Position{Line: line, Character: col}
			sel := docs.Caret(start)
			if cmd.Flags().Changed("end-line") || cmd.Flags().Changed("end-col") {
				if !cmd.Flags().Changed("end-line") {
					endLine = line
				}
				end := protocol.Position{Line: endLine, Character: endCol}
				sel = docs.Selection{Start: start, End: end, Active: end}
			}

			fh := filehost.New(doc, rulers, cmd.ErrOrStderr())
			writer := docs.NewWriter(
				fh,
				docs.NewClient(env.Config.URL(), env.Config.Timeout()),
				docs.Options{
					Languages: env.Config.Editor.Languages,
					Source:    SourceCLI,
				},
			)
			state, err := writer.Write(cmd.Context(), &docs.Editor{Document: doc, Selection: sel})
			if err != nil {
				// Messages for these were already written to stderr.
				if docs.UserMessage(err) != "" {
					return fmt.Errorf("documentation not written: %s", state)
				}
				return err
			}

			if inPlace {
				return fh.Save()
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), fh.Document().Text)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file to document")
	cmd.Flags().StringVarP(&languageID, "language", "", "", "language id (default guessed from the file extension)")
	cmd.Flags().Uint32VarP(&line, "line", "l", 0, "cursor line")
	cmd.Flags().Uint32VarP(&col, "col", "c", 0, "cursor column")
	cmd.Flags().Uint32VarP(&endLine, "end-line", "", 0, "selection end line")
	cmd.Flags().Uint32VarP(&endCol, "end-col", "", 0, "selection end column")
	cmd.Flags().IntSliceVarP(&rulers, "rulers", "", nil, "editor rulers; the first one bounds the docstring width")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite the file instead of printing it")
	addServiceFlags(cmd, &host, &port)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
