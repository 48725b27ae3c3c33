package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/check"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/pipeline"
)

func newBuildCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [catalog_dir] [out_dir]",
		Short: "Build the catalog site",
		Long: `Build the KO and EN index pages, detail pages and atlas files from the
catalog directory. The output directory is cleared first unless --no-clean
is given; a directory that cannot be removed is renamed aside.`,
		Example: `  $ gptcatalog build
  $ gptcatalog build catalog docs --preset tistory
  $ gptcatalog build --dry-run -v`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			printBanner(cmd, info)
			s.log.Info("=== gptcatalog v%s (%s) ===", info.Version, info.Commit)
			if err := check.CheckPaths(s.cfg); err != nil {
				s.log.Error("%v", err)
				return err
			}
			if s.cfg.Watch {
				return pipeline.Watch(cmd.Context(), s.cfg, s.log)
			}
			_, err = pipeline.Run(cmd.Context(), s.cfg, s.log)
			return err
		},
	}
	config.DefineBuildFlags(cmd.Flags())
	return cmd
}
