package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/tylerjwoodfin/atlas-man/internal/config"
	"github.com/tylerjwoodfin/atlas-man/internal/confluence"
	"github.com/tylerjwoodfin/atlas-man/internal/format"
)

var confluenceCmd = &cobra.Command{
	Use:     "confluence",
	Aliases: []string{"c"},
	Short:   "Manage Confluence pages",
	Long: `Manage Confluence pages. Confluence shares the Jira credentials.

  atlasman confluence --pages DOCS
  atlasman confluence --add-page DOCS "Release notes" "<p>...</p>"
  atlasman confluence --edit-page 123456`,
	Args: cobra.ArbitraryArgs,
	RunE: runConfluence,
}

var confluenceOps = []string{"pages", "page", "add-page", "edit-page", "delete-page"}

func init() {
	f := confluenceCmd.Flags()
	f.String("pages", "", "List all pages of a space (default: configured space)")
	f.Lookup("pages").NoOptDefVal = "default"
	f.String("page", "", "Show a page by ID")
	f.String("add-page", "", "Create a page: --add-page SPACE TITLE CONTENT")
	f.String("edit-page", "", "Edit a page body in $EDITOR by page ID")
	f.String("delete-page", "", "Delete a page by ID")
}

func runConfluence(cmd *cobra.Command, args []string) error {
	op, err := oneOperation(cmd, confluenceOps)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Jira.Username == "" || cfg.Jira.APIToken == "" {
		return fmt.Errorf("missing Jira credentials in the configuration file; Confluence uses them")
	}

	baseURL := cfg.Confluence.BaseURL
	if baseURL == "" {
		baseURL = cfg.Jira.BaseURL
	}
	if baseURL == "" {
		return fmt.Errorf("no Confluence base URL configured")
	}

	client := confluence.NewClient(baseURL, cfg.Jira.Username, cfg.Jira.APIToken)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flagVal := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	switch op {
	case "pages":
		// As with jira --issues, accept the space key either as =KEY or as a
		// positional argument.
		space := flagVal("pages")
		if space == "default" && len(args) == 1 {
			space = args[0]
		}
		return confluencePages(ctx, cfg, client, space)
	case "page":
		return confluenceShowPage(ctx, cfg, client, flagVal("page"))
	case "add-page":
		if err := trailing(args, 2, "atlasman confluence --add-page SPACE TITLE CONTENT"); err != nil {
			return err
		}
		space := flagVal("add-page")
		if space == "" || space == "default" {
			space = cfg.Confluence.DefaultSpaceKey
		}
		page, err := client.CreatePage(ctx, space, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Page %q created successfully with ID %s.\n", page.Title, page.ID)
		return nil
	case "edit-page":
		return confluenceEditPage(ctx, client, flagVal("edit-page"))
	case "delete-page":
		pageID := flagVal("delete-page")
		if err := client.DeletePage(ctx, pageID); err != nil {
			return err
		}
		fmt.Printf("Page with ID %q deleted successfully.\n", pageID)
		return nil
	}
	return nil
}

func confluencePages(ctx context.Context, cfg *config.Config, client *confluence.Client, spaceArg string) error {
	space := spaceArg
	if space == "default" || space == "" {
		space = cfg.Confluence.DefaultSpaceKey
	}
	if space == "" {
		return fmt.Errorf("no space key provided, and no default space set in configuration")
	}

	pages, err := client.Pages(ctx, space)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []string{p.ID, p.Title})
	}
	return newPrinter(cfg).Print(pages, []string{"ID", "TITLE"}, rows)
}

func confluenceShowPage(ctx context.Context, cfg *config.Config, client *confluence.Client, pageID string) error {
	page, err := client.Page(ctx, pageID)
	if err != nil {
		return err
	}

	rows := [][]string{{page.ID, page.Title, fmt.Sprintf("%d", page.Version.Number)}}
	if err := newPrinter(cfg).Print(page, []string{"ID", "TITLE", "VERSION"}, rows); err != nil {
		return err
	}
	if cfg.CLI.OutputFormat == format.Table && page.Body.Storage.Value != "" {
		fmt.Println()
		fmt.Println(page.Body.Storage.Value)
	}
	return nil
}

// confluenceEditPage round-trips the page body through the user's editor and
// writes it back with the version bumped.
func confluenceEditPage(ctx context.Context, client *confluence.Client, pageID string) error {
	page, err := client.Page(ctx, pageID)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "atlasman-page-*.html")
	if err != nil {
		return err
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(page.Body.Storage.Value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := runEditor(path); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if string(edited) == page.Body.Storage.Value {
		fmt.Println("No changes.")
		return nil
	}

	updated, err := client.UpdatePage(ctx, page, string(edited))
	if err != nil {
		return err
	}
	fmt.Printf("Page %q updated successfully (version %d).\n", updated.Title, updated.Version.Number)
	return nil
}

func runEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
