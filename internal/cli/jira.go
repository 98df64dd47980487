package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tylerjwoodfin/atlas-man/internal/apierr"
	"github.com/tylerjwoodfin/atlas-man/internal/config"
	"github.com/tylerjwoodfin/atlas-man/internal/jira"
)

var jiraCmd = &cobra.Command{
	Use:     "jira",
	Aliases: []string{"j"},
	Short:   "Manage Jira issues and projects",
	Long: `Manage Jira issues and projects.

Projects may be given by key or by a configured alias. Two-argument
operations take the second value as a positional argument:

  atlasman jira --add-issue OPS "Rotate the on-call key"
  atlasman jira --update-issue OPS-12 "Rotate the on-call GPG key"`,
	Args: cobra.ArbitraryArgs,
	RunE: runJira,
}

var jiraOps = []string{
	"issues", "projects",
	"add-issue", "update-issue", "delete-issue",
	"add-project", "delete-project",
}

func init() {
	f := jiraCmd.Flags()
	f.String("issues", "", "List all issues of a project (default: configured project)")
	f.Lookup("issues").NoOptDefVal = "default"
	f.Bool("projects", false, "List all Jira projects")
	f.String("add-issue", "", "Add a new issue: --add-issue PROJECT TITLE")
	f.String("update-issue", "", "Update an issue summary: --update-issue KEY TITLE")
	f.String("delete-issue", "", "Delete an issue by key")
	f.String("add-project", "", "Create a new project: --add-project NAME KEY")
	f.String("delete-project", "", "Delete a project by key")
}

func runJira(cmd *cobra.Command, args []string) error {
	op, err := oneOperation(cmd, jiraOps)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Jira.BaseURL == "" || cfg.Jira.Username == "" || cfg.Jira.APIToken == "" {
		return fmt.Errorf("missing required Jira credentials (base_url, username, or api_token) in the configuration file")
	}

	client := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Username, cfg.Jira.APIToken)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flagVal := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	switch op {
	case "issues":
		// pflag only accepts --issues=KEY for flags with an optional value;
		// accept a space-separated key as a positional argument too.
		project := flagVal("issues")
		if project == "default" && len(args) == 1 {
			project = args[0]
		}
		return jiraIssues(ctx, cfg, client, project)
	case "projects":
		return jiraProjects(ctx, cfg, client)
	case "add-issue":
		if err := trailing(args, 1, "atlasman jira --add-issue PROJECT TITLE"); err != nil {
			return err
		}
		key := resolveProjectKey(cfg, flagVal("add-issue"))
		issue, err := client.CreateIssue(ctx, key, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Issue %q created successfully in project %q.\n", issue.Key, key)
		return nil
	case "update-issue":
		if err := trailing(args, 1, "atlasman jira --update-issue KEY TITLE"); err != nil {
			return err
		}
		issueKey := flagVal("update-issue")
		if err := client.UpdateIssueSummary(ctx, issueKey, args[0]); err != nil {
			return err
		}
		fmt.Printf("Issue %q updated successfully.\n", issueKey)
		return nil
	case "delete-issue":
		issueKey := flagVal("delete-issue")
		if err := client.DeleteIssue(ctx, issueKey); err != nil {
			return err
		}
		fmt.Printf("Issue %q deleted successfully.\n", issueKey)
		return nil
	case "add-project":
		if err := trailing(args, 1, "atlasman jira --add-project NAME KEY"); err != nil {
			return err
		}
		name := flagVal("add-project")
		project, err := client.CreateProject(ctx, name, args[0])
		if err != nil {
			if apierr.StatusCode(err) == http.StatusForbidden {
				return fmt.Errorf("you do not have the required admin privileges to create projects")
			}
			return err
		}
		fmt.Printf("Project %q created successfully with key %s.\n", name, project.Key)
		return nil
	case "delete-project":
		key := resolveProjectKey(cfg, flagVal("delete-project"))
		if err := client.DeleteProject(ctx, key); err != nil {
			switch apierr.StatusCode(err) {
			case http.StatusForbidden:
				return fmt.Errorf("you do not have the required admin privileges to delete projects")
			case http.StatusNotFound:
				return fmt.Errorf("project %q not found", key)
			}
			return err
		}
		fmt.Printf("Project %q deleted successfully.\n", key)
		return nil
	}
	return nil
}

func jiraIssues(ctx context.Context, cfg *config.Config, client *jira.Client, projectArg string) error {
	key := projectArg
	if key == "default" || key == "" {
		key = cfg.Jira.DefaultProjectKey
	}
	if key == "" {
		return fmt.Errorf("no project key provided, and no default project set in configuration")
	}
	key = resolveProjectKey(cfg, key)

	issues, err := client.Issues(ctx, key)
	if err != nil {
		return err
	}
	if !cfg.Jira.ShowDoneIssues {
		issues = jira.FilterDone(issues)
	}
	jira.SortByStatusOrder(issues, cfg.Jira.CustomStatusOrder)

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{issue.Key, issue.Fields.Status.Name, issue.Fields.Summary})
	}
	return newPrinter(cfg).Print(issues, []string{"KEY", "STATUS", "SUMMARY"}, rows)
}

func jiraProjects(ctx context.Context, cfg *config.Config, client *jira.Client) error {
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.Key, p.Name})
	}
	return newPrinter(cfg).Print(projects, []string{"KEY", "NAME"}, rows)
}

// resolveProjectKey maps a configured alias to its project key; anything else
// passes through unchanged.
func resolveProjectKey(cfg *config.Config, arg string) string {
	if key, ok := cfg.Jira.AliasIDs[arg]; ok && key != "" {
		verbosef("Resolved alias %q to project %s", arg, key)
		return key
	}
	return arg
}
