package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tylerjwoodfin/atlas-man/internal/config"
	"github.com/tylerjwoodfin/atlas-man/internal/trello"
)

var trelloCmd = &cobra.Command{
	Use:     "trello",
	Aliases: []string{"t"},
	Short:   "Manage Trello boards, lists, and cards",
	Long: `Manage Trello boards, lists, and cards.

Boards and lists may be given by name, by ID, or by a configured alias.
Two-argument operations take the second value as a positional argument:

  atlasman trello --add-list "Chores" "This Week"
  atlasman trello --add-card "This Week" "Water the plants"`,
	Args: cobra.ArbitraryArgs,
	RunE: runTrello,
}

var trelloOps = []string{
	"boards", "lists", "cards",
	"add-board", "add-list", "add-card",
	"delete-board", "delete-list", "delete-card",
}

func init() {
	f := trelloCmd.Flags()
	f.Bool("boards", false, "List all Trello boards")
	f.String("lists", "", "List all lists of a board")
	f.String("cards", "", "List all cards of a list")
	f.String("add-board", "", "Create a new board")
	f.String("add-list", "", "Create a new list: --add-list BOARD LIST")
	f.String("add-card", "", "Create a new card: --add-card LIST CARD")
	f.String("desc", "", "Card description for --add-card")
	f.String("delete-board", "", "Delete a board")
	f.String("delete-list", "", "Close (archive) a list: --delete-list BOARD LIST")
	f.String("delete-card", "", "Delete a card: --delete-card LIST CARD")
}

func runTrello(cmd *cobra.Command, args []string) error {
	op, err := oneOperation(cmd, trelloOps)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Trello.APIKey == "" || cfg.Trello.APIToken == "" {
		return fmt.Errorf("missing Trello API credentials in the configuration file")
	}

	client := trello.NewClient(cfg.Trello.APIKey, cfg.Trello.APIToken)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flagVal := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	switch op {
	case "boards":
		return trelloBoards(ctx, cfg, client)
	case "lists":
		return trelloLists(ctx, cfg, client, flagVal("lists"))
	case "cards":
		return trelloCards(ctx, cfg, client, flagVal("cards"))
	case "add-board":
		board, err := client.CreateBoard(ctx, flagVal("add-board"))
		if err != nil {
			return err
		}
		fmt.Printf("Board %q created with ID %s.\n", board.Name, board.ID)
		return nil
	case "add-list":
		if err := trailing(args, 1, "atlasman trello --add-list BOARD LIST"); err != nil {
			return err
		}
		return trelloAddList(ctx, cfg, client, flagVal("add-list"), args[0])
	case "add-card":
		if err := trailing(args, 1, "atlasman trello --add-card LIST CARD"); err != nil {
			return err
		}
		return trelloAddCard(ctx, cfg, client, flagVal("add-card"), args[0], flagVal("desc"))
	case "delete-board":
		return trelloDeleteBoard(ctx, cfg, client, flagVal("delete-board"))
	case "delete-list":
		if err := trailing(args, 1, "atlasman trello --delete-list BOARD LIST"); err != nil {
			return err
		}
		return trelloDeleteList(ctx, cfg, client, flagVal("delete-list"), args[0])
	case "delete-card":
		if err := trailing(args, 1, "atlasman trello --delete-card LIST CARD"); err != nil {
			return err
		}
		return trelloDeleteCard(ctx, cfg, client, flagVal("delete-card"), args[0])
	}
	return nil
}

func trelloBoards(ctx context.Context, cfg *config.Config, client *trello.Client) error {
	boards, err := client.Boards(ctx)
	if err != nil {
		return err
	}

	open := boards[:0:0]
	for _, b := range boards {
		if !b.Closed {
			open = append(open, b)
		}
	}

	rows := make([][]string, 0, len(open))
	for _, b := range open {
		rows = append(rows, []string{b.ID, b.Name, b.ShortURL})
	}
	return newPrinter(cfg).Print(open, []string{"ID", "NAME", "URL"}, rows)
}

func trelloLists(ctx context.Context, cfg *config.Config, client *trello.Client, boardArg string) error {
	boardID, err := resolveBoardID(ctx, cfg, client, boardArg)
	if err != nil {
		return err
	}
	lists, err := client.Lists(ctx, boardID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []string{l.ID, l.Name})
	}
	return newPrinter(cfg).Print(lists, []string{"ID", "NAME"}, rows)
}

func trelloCards(ctx context.Context, cfg *config.Config, client *trello.Client, listArg string) error {
	listID, err := resolveListID(ctx, cfg, client, listArg)
	if err != nil {
		return err
	}
	cards, err := client.Cards(ctx, listID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{c.ID, c.Name, c.Desc})
	}
	return newPrinter(cfg).Print(cards, []string{"ID", "NAME", "DESCRIPTION"}, rows)
}

func trelloAddList(ctx context.Context, cfg *config.Config, client *trello.Client, boardArg, name string) error {
	boardID, err := resolveBoardID(ctx, cfg, client, boardArg)
	if err != nil {
		return err
	}
	list, err := client.CreateList(ctx, boardID, name)
	if err != nil {
		return err
	}
	fmt.Printf("List %q created on board %q.\n", list.Name, boardArg)
	return nil
}

func trelloAddCard(ctx context.Context, cfg *config.Config, client *trello.Client, listArg, name, desc string) error {
	listID, err := resolveListID(ctx, cfg, client, listArg)
	if err != nil {
		return err
	}
	card, err := client.CreateCard(ctx, listID, name, desc)
	if err != nil {
		return err
	}
	fmt.Printf("Card %q added to list %q.\n", card.Name, listArg)
	return nil
}

func trelloDeleteBoard(ctx context.Context, cfg *config.Config, client *trello.Client, boardArg string) error {
	boardID, err := resolveBoardID(ctx, cfg, client, boardArg)
	if err != nil {
		return err
	}
	if err := client.DeleteBoard(ctx, boardID); err != nil {
		return err
	}
	fmt.Printf("Board %q deleted.\n", boardArg)
	return nil
}

func trelloDeleteList(ctx context.Context, cfg *config.Config, client *trello.Client, boardArg, listArg string) error {
	boardID, err := resolveBoardID(ctx, cfg, client, boardArg)
	if err != nil {
		return err
	}

	listID := listArg
	if !trello.IsID(listArg) {
		list, err := client.ListByName(ctx, boardID, listArg)
		if err != nil {
			return err
		}
		listID = list.ID
	}
	if err := client.CloseList(ctx, listID); err != nil {
		return err
	}
	// Trello cannot delete lists; closing archives them.
	fmt.Printf("List %q closed.\n", listArg)
	return nil
}

func trelloDeleteCard(ctx context.Context, cfg *config.Config, client *trello.Client, listArg, cardArg string) error {
	cardID := cardArg
	if !trello.IsID(cardArg) {
		listID, err := resolveListID(ctx, cfg, client, listArg)
		if err != nil {
			return err
		}
		card, err := client.CardByName(ctx, listID, cardArg)
		if err != nil {
			return err
		}
		cardID = card.ID
	}
	if err := client.DeleteCard(ctx, cardID); err != nil {
		return err
	}
	fmt.Printf("Card %q deleted from list %q.\n", cardArg, listArg)
	return nil
}

// resolveBoardID turns a board argument into an ID: configured alias first,
// then ID-shaped strings, then remote lookup by name.
func resolveBoardID(ctx context.Context, cfg *config.Config, client *trello.Client, arg string) (string, error) {
	if alias, ok := cfg.Trello.AliasIDs[arg]; ok && alias.BoardID != "" {
		verbosef("Resolved alias %q to board %s", arg, alias.BoardID)
		return alias.BoardID, nil
	}
	if trello.IsID(arg) {
		return arg, nil
	}
	board, err := client.BoardByName(ctx, arg)
	if err != nil {
		return "", err
	}
	verbosef("Resolved board %q to %s", arg, board.ID)
	return board.ID, nil
}

// resolveListID turns a list argument into an ID. Bare names are looked up on
// the configured default board.
func resolveListID(ctx context.Context, cfg *config.Config, client *trello.Client, arg string) (string, error) {
	if alias, ok := cfg.Trello.AliasIDs[arg]; ok && alias.ListID != "" {
		verbosef("Resolved alias %q to list %s", arg, alias.ListID)
		return alias.ListID, nil
	}
	if trello.IsID(arg) {
		return arg, nil
	}
	if cfg.Trello.DefaultBoard == "" {
		return "", fmt.Errorf("no default board specified in the configuration file; use a list ID or alias, or set trello.default_board")
	}
	boardID, err := resolveBoardID(ctx, cfg, client, cfg.Trello.DefaultBoard)
	if err != nil {
		return "", err
	}
	list, err := client.ListByName(ctx, boardID, arg)
	if err != nil {
		return "", err
	}
	verbosef("Resolved list %q to %s", arg, list.ID)
	return list.ID, nil
}
