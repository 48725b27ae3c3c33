// Package cli wires the gptcatalog commands onto cobra. Every command loads
// its configuration through config.Load from the flags it was given, so
// file, environment and flag precedence is the same everywhere.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/display"
	"github.com/cnucho/gptcatalog/internal/logging"
)

// BuildInfo carries the version and commit that main sets from ldflags.
type BuildInfo struct {
	Version string
	Commit  string
}

var bold = lipgloss.NewStyle().Bold(true)

// NewRootCommand returns the gptcatalog command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:     "gptcatalog",
		Short:   "Bilingual GPT catalog site generator",
		Version: info.Version,
		Long: `Builds a Korean/English catalog site from a directory of GPT description
files. Each file is classified by language, given a stable id, reconciled
with its counterpart in the other language, and rendered as index pages,
detail pages and atlas YAML.`,
		Example: `  # Build the site into ./docs
  $ gptcatalog build catalog docs

  # Build the standalone preset with a sitemap
  $ gptcatalog build --preset site --site-url https://gpts.example.org

  # Rebuild on every change and preview at http://127.0.0.1:8088
  $ gptcatalog serve --watch

  # Report naming problems without writing anything
  $ gptcatalog check --strict`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(fmt.Sprintf("gptcatalog version %s (%s)\n", info.Version, info.Commit))
	root.SetUsageTemplate(usageTemplate())
	root.SetHelpTemplate(usageTemplate())

	config.DefinePersistentFlags(root.PersistentFlags())

	root.AddCommand(
		newBuildCommand(info),
		newCheckCommand(),
		newListCommand(),
		newIndexCommand(),
		newExportCommand(),
		newServeCommand(info),
	)
	return root
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// session is the loaded configuration and logger of one command run.
type session struct {
	cfg *config.Config
	log *logging.Logger
}

// start maps positional args onto flags, loads and validates the
// configuration, and opens the logger. Console output goes to the
// command's writers. The caller must Close the logger.
func start(cmd *cobra.Command, args []string) (*session, error) {
	fs := cmd.Flags()
	if err := config.ApplyArgs(fs, args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config: %s", cfg.ConfigFile)
	}
	return &session{cfg: &cfg, log: log}, nil
}

func (s *session) Close() { _ = s.log.Close() }

func printBanner(cmd *cobra.Command, info BuildInfo) {
	display.PrintBanner(cmd.OutOrStdout(), info.Version)
}
