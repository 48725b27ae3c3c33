package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/check"
	"github.com/cnucho/gptcatalog/internal/config"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [catalog_dir] [out_dir]",
		Short: "Validate the catalog without writing anything",
		Long: `Load the whole catalog and report files that fail to parse, entries whose
language was defaulted, suffixed ids, restored English names, entries left
out of the atlas, and override table problems.`,
		Example: `  $ gptcatalog check
  $ gptcatalog check --strict --overrides gpt_index_master_override.xlsx`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			_, err = check.RunCheck(cmd.Context(), s.cfg, s.log)
			return err
		},
	}
	config.DefineCheckFlags(cmd.Flags())
	cmd.Flags().StringP("out", "o", config.DefaultConfig().OutputDir, "Output directory to validate against")
	return cmd
}
