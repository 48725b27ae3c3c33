package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/pipeline"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [catalog_dir]",
		Short: "Export the catalog to SQLite or CSV",
		Example: `  $ gptcatalog export --db build/catalog.db
  $ gptcatalog export --csv build/gpts_tidy.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()
			return pipeline.Export(cmd.Context(), s.cfg, s.log)
		},
	}
	config.DefineExportFlags(cmd.Flags())
	cmd.Flags().BoolP("dry-run", "d", false, "Preview only; do not write files")
	return cmd
}
