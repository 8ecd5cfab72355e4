// Package cli implements the nyaya command-line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nyaya/internal/service"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// AnalyzerFactory builds the analysis pipeline on demand.
type AnalyzerFactory func(ctx context.Context) (service.CaseAnalyzer, error)

// Seeder loads the bundled legal knowledge into storage.
type Seeder interface {
	SeedDefaults(ctx context.Context) (int, error)
}

// SeederFactory opens the knowledge store. The returned func releases it.
type SeederFactory func(ctx context.Context) (Seeder, func(), error)

// Dependencies are resolved lazily so commands only connect to what they use.
type Dependencies struct {
	Analyzer AnalyzerFactory
	Seeder   SeederFactory
}

// NewRootCommand creates the root command and mounts every subcommand.
func NewRootCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nyaya",
		Short:         "Analyze legal situations described in English, Hindi, or Marathi",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newAnalyzeCmd(deps.Analyzer),
		newKnowledgeCmd(deps.Seeder),
	)
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
