package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tylerjwoodfin/atlas-man/internal/apierr"
	"github.com/tylerjwoodfin/atlas-man/internal/config"
	"github.com/tylerjwoodfin/atlas-man/internal/format"
)

var (
	verbose bool
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "atlasman",
		Short: "Atlas-Man - manage Trello and Jira projects from the terminal",
		Long: `Atlas-Man is a CLI to manage Trello boards, Jira projects, and Confluence
pages. Credentials and aliases live in ` + "`~/.config/atlas-man/config.json`" + `;
run 'atlasman config init' to create it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(trelloCmd)
	rootCmd.AddCommand(jiraCmd)
	rootCmd.AddCommand(confluenceCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	rootCmd.SetArgs(normalizeModeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if apierr.IsAuth(err) {
			fmt.Fprintln(os.Stderr, "Check your API credentials ('atlasman config show').")
		}
		return err
	}
	return nil
}

// normalizeModeArgs rewrites the historical double-dash tool selectors into
// subcommands, so both 'atlasman --trello --boards' and
// 'atlasman trello --boards' work.
func normalizeModeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "--trello", "--t":
		return append([]string{"trello"}, args[1:]...)
	case "--jira", "--j":
		return append([]string{"jira"}, args[1:]...)
	case "--confluence", "--c":
		return append([]string{"confluence"}, args[1:]...)
	case "--config":
		return append([]string{"config", "edit"}, args[1:]...)
	}
	return args
}

// loadConfig loads the configuration and promotes the configured verbosity.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.CLI.Verbose {
		verbose = true
	}
	return cfg, nil
}

func newPrinter(cfg *config.Config) *format.Printer {
	return format.New(cfg.CLI.OutputFormat, os.Stdout)
}

func verbosef(msg string, args ...any) {
	if verbose {
		fmt.Printf(msg+"\n", args...)
	}
}

// oneOperation returns the single changed operation flag, or an error when
// zero or several were given.
func oneOperation(cmd *cobra.Command, names []string) (string, error) {
	var chosen []string
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			chosen = append(chosen, name)
		}
	}
	switch len(chosen) {
	case 0:
		return "", fmt.Errorf("no operation given (see 'atlasman %s --help')", cmd.Name())
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("operations are mutually exclusive, got --%s and --%s", chosen[0], chosen[1])
	}
}

// trailing validates the number of positional arguments an operation expects
// beyond its flag value.
func trailing(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}
