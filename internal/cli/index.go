package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/pipeline"
)

func newIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [catalog_dir]",
		Short: "Create or update the master override workbook",
		Long: `Upsert every catalog entry into the master override workbook, one sheet
per language. Hand-edited columns are kept; catalog snapshot columns are
refreshed and rows whose entry disappeared are marked missing.`,
		Example: `  $ gptcatalog index
  $ gptcatalog index --workbook overrides/master.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			rep, err := pipeline.SyncIndex(cmd.Context(), s.cfg, s.log)
			if err != nil {
				return err
			}
			if !s.cfg.DryRun {
				s.log.Success("Updated %s", rep.Path)
			}
			return nil
		},
	}
	config.DefineIndexFlags(cmd.Flags())
	cmd.Flags().BoolP("dry-run", "d", false, "Preview only; do not write the workbook")
	return cmd
}
