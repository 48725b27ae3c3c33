package cli

import (
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/check"
	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/serve"
)

func newServeCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [catalog_dir] [out_dir]",
		Short: "Build the site and preview it over HTTP",
		Long: `Build the site, then serve the output directory. With --watch the site is
rebuilt whenever a catalog file or the override table changes.`,
		Example: `  $ gptcatalog serve
  $ gptcatalog serve --watch --addr :9000`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := start(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			printBanner(cmd, info)
			if err := check.CheckPaths(s.cfg); err != nil {
				s.log.Error("%v", err)
				return err
			}
			s.log.Info("Serving %s on http://%s", s.cfg.OutputDir, s.cfg.ServeAddr)
			return serve.Run(cmd.Context(), s.cfg, s.log)
		},
	}
	config.DefineBuildFlags(cmd.Flags())
	config.DefineServeFlags(cmd.Flags())
	return cmd
}
