package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tylerjwoodfin/atlas-man/internal/config"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage aliases for boards, lists, and projects",
	Long: `Manage user-defined aliases. An alias maps a short name to a Trello
board (optionally with a list) or to a Jira project key, and can be used
wherever a board, list, or project argument is expected.

  atlasman alias set todo --board 5f0c7f6e8a1b2c3d4e5f6071 --list 5f0c7f6e8a1b2c3d4e5f6072
  atlasman alias set ops --project OPS`,
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured aliases",
	RunE:  runAliasList,
}

var aliasSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Create or update an alias",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasSet,
}

var aliasRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove an alias",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasRm,
}

func init() {
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasRmCmd)

	aliasSetCmd.Flags().String("board", "", "Trello board ID")
	aliasSetCmd.Flags().String("list", "", "Trello list ID (requires --board)")
	aliasSetCmd.Flags().String("project", "", "Jira project key")
}

type aliasRow struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Target string `json:"target" yaml:"target"`
}

// collectAliases merges the Trello and Jira aliases into sorted rows. The
// result is never nil so json output stays a list.
func collectAliases(cfg *config.Config) []aliasRow {
	all := make([]aliasRow, 0, len(cfg.Trello.AliasIDs)+len(cfg.Jira.AliasIDs))
	for name, a := range cfg.Trello.AliasIDs {
		target := a.BoardID
		if a.ListID != "" {
			target += " / " + a.ListID
		}
		all = append(all, aliasRow{Name: name, Kind: "trello", Target: target})
	}
	for name, key := range cfg.Jira.AliasIDs {
		all = append(all, aliasRow{Name: name, Kind: "jira", Target: key})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func runAliasList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	all := collectAliases(cfg)
	rows := make([][]string, 0, len(all))
	for _, a := range all {
		rows = append(rows, []string{a.Name, a.Kind, a.Target})
	}
	return newPrinter(cfg).Print(all, []string{"NAME", "KIND", "TARGET"}, rows)
}

func runAliasSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	board, _ := cmd.Flags().GetString("board")
	list, _ := cmd.Flags().GetString("list")
	project, _ := cmd.Flags().GetString("project")

	switch {
	case board == "" && project == "":
		return fmt.Errorf("alias %q needs --board or --project", name)
	case board != "" && project != "":
		return fmt.Errorf("--board and --project are mutually exclusive")
	case list != "" && board == "":
		return fmt.Errorf("--list requires --board")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if board != "" {
		if cfg.Trello.AliasIDs == nil {
			cfg.Trello.AliasIDs = map[string]config.TrelloAlias{}
		}
		cfg.Trello.AliasIDs[name] = config.TrelloAlias{BoardID: board, ListID: list}
	} else {
		if cfg.Jira.AliasIDs == nil {
			cfg.Jira.AliasIDs = map[string]string{}
		}
		cfg.Jira.AliasIDs[name] = project
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Alias %q saved.\n", name)
	return nil
}

// removeAlias deletes an alias and reports which kinds held it. 'alias set'
// keeps the kinds exclusive, but a hand-edited file can define both.
func removeAlias(cfg *config.Config, name string) ([]string, error) {
	var kinds []string
	if _, ok := cfg.Trello.AliasIDs[name]; ok {
		delete(cfg.Trello.AliasIDs, name)
		kinds = append(kinds, "trello")
	}
	if _, ok := cfg.Jira.AliasIDs[name]; ok {
		delete(cfg.Jira.AliasIDs, name)
		kinds = append(kinds, "jira")
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no alias named %q", name)
	}
	return kinds, nil
}

func runAliasRm(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kinds, err := removeAlias(cfg, name)
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Alias %q (%s) removed.\n", name, strings.Join(kinds, ", "))
	return nil
}
