package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKnowledgeCmd(factory SeederFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the legal knowledge base",
	}
	cmd.AddCommand(newKnowledgeSeedCmd(factory))
	return cmd
}

func newKnowledgeSeedCmd(factory SeederFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled statute entries, updating any that already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeder, release, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			n, err := seeder.SeedDefaults(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding knowledge (%d stored): %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d knowledge entries\n", n)
			return nil
		},
	}
}
