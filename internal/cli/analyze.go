package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nyaya/internal/domain"
	"nyaya/internal/export"
)

func newAnalyzeCmd(factory AnalyzerFactory) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze a legal situation without storing it",
		Long:  "Analyze a free-text description of a legal situation. Reads standard input when no text is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				text = string(raw)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return errors.New("no text to analyze")
			}

			analyzer, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			result := analyzer.Analyze(cmd.Context(), text)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, result)
			}
			_, err = io.WriteString(out, export.RenderReport(domain.NewCase(&result, nil), time.Now()))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	return cmd
}
