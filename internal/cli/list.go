package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/pipeline"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [catalog_dir]",
		Short: "Print the reconciled catalog as a table",
		Example: `  $ gptcatalog list
  $ gptcatalog list catalog --overrides overrides.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()
			return pipeline.List(cmd.Context(), s.cfg, s.log, cmd.OutOrStdout())
		},
	}
}
