package commands

import (
	"io"

	"github.com/spf13/cobra"

	"goldrun/internal/cli"
	"goldrun/internal/config"
	"goldrun/internal/suite"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Review  *ReviewCommand
}

// NewCommands creates all commands. cfg is filled in once flags are parsed.
func NewCommands(cfg *config.Config, out, errOut io.Writer) *Commands {
	return &Commands{
		Run:     NewRunCommand(cfg, out, errOut),
		List:    NewListCommand(cfg, out, errOut),
		Migrate: NewMigrateCommand(cfg, out),
		Review:  NewReviewCommand(cfg, out),
	}
}

// NewRootCommand builds the goldrun command tree writing to out and errOut.
func NewRootCommand(version string, out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goldrun",
		Short: "Golden-file regression harness for a compiler front end",
		Long: `Run the compiler's lexer and parser against recorded inputs and compare
their output with the golden files. Without a subcommand both comparison
suites run.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	cfg := config.New()
	var flags cli.Flags
	NewCommands(cfg, out, errOut).Register(rootCmd, &flags, cfg)
	return rootCmd
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "Path to the config file (default goldrun.yaml when present)")
	pf.StringVarP(&flags.SubjectPath, "subject", "s", "", "Compiler executable under test")
	pf.StringVarP(&flags.ArtifactRoot, "root", "r", "", "Directory holding the golden-file directories")
	pf.DurationVarP(&flags.Timeout, "timeout", "t", 0, "Per-case time bound for the subject (e.g. 5s)")
	pf.StringVarP(&flags.Cases, "cases", "c", "", "Case plan, e.g. '0,1,2,10-16'")
	pf.IntVarP(&flags.Jobs, "jobs", "j", 0, "Number of cases run concurrently")
	pf.StringVarP(&flags.Granularity, "granularity", "g", "", "Comparison granularity for every suite: char or line")
	pf.BoolVar(&flags.NoInputPath, "no-input-path", false, "Run the subject without the case's source path")
	pf.StringVarP(&flags.Filter, "filter", "f", "", "Keep only cases whose title matches (supports wildcards, e.g. '*unbound*')")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := flags.LoadConfig()
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}
	rootCmd.RunE = c.Run.Suites(suite.NameLexer, suite.NameParser)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "lexer",
		Short: "Compare lexer output with the token-stream golden files",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Suites(suite.NameLexer),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "parser",
		Short: "Compare parser output with the AST golden files",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Suites(suite.NameParser),
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Print title, source and parse result of each case for manual review",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Suites(suite.NameInspect),
	})
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List planned cases and their golden files",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVarP(&c.List.all, "all", "a", false, "List every case found in the source directory instead of the plan")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "review",
		Short: "Browse failing cases of the last run interactively",
		Long:  "Display the failures stored by the last run; R marks a case reviewed",
		Args:  cobra.NoArgs,
		RunE:  c.Review.Execute,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the run history database and tables",
		Args:  cobra.NoArgs,
		RunE:  c.Migrate.Execute,
	})
}
