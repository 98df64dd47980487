package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestNormalizeModeArgs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"trello long", []string{"--trello", "--boards"}, []string{"trello", "--boards"}},
		{"trello short", []string{"--t", "--boards"}, []string{"trello", "--boards"}},
		{"jira long", []string{"--jira", "--projects"}, []string{"jira", "--projects"}},
		{"jira short", []string{"--j", "--issues"}, []string{"jira", "--issues"}},
		{"confluence", []string{"--confluence", "--pages"}, []string{"confluence", "--pages"}},
		{"config", []string{"--config"}, []string{"config", "edit"}},
		{"subcommand untouched", []string{"trello", "--boards"}, []string{"trello", "--boards"}},
		{"empty", []string{}, []string{}},
		{"unrelated flag untouched", []string{"--verbose"}, []string{"--verbose"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeModeArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("normalizeModeArgs(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOneOperation(t *testing.T) {
	t.Parallel()

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "scratch"}
		cmd.Flags().Bool("boards", false, "")
		cmd.Flags().String("add-board", "", "")
		cmd.Flags().String("desc", "", "")
		return cmd
	}
	ops := []string{"boards", "add-board"}

	cmd := newCmd()
	if _, err := oneOperation(cmd, ops); err == nil {
		t.Error("Expected an error when no operation flag is set")
	}

	cmd = newCmd()
	if err := cmd.Flags().Set("boards", "true"); err != nil {
		t.Fatal(err)
	}
	op, err := oneOperation(cmd, ops)
	if err != nil || op != "boards" {
		t.Errorf("Expected 'boards', got %q (err %v)", op, err)
	}

	cmd = newCmd()
	cmd.Flags().Set("boards", "true")
	cmd.Flags().Set("add-board", "Chores")
	if _, err := oneOperation(cmd, ops); err == nil {
		t.Error("Expected an error for two operation flags")
	}

	// Non-operation flags must not count.
	cmd = newCmd()
	cmd.Flags().Set("boards", "true")
	cmd.Flags().Set("desc", "x")
	if _, err := oneOperation(cmd, ops); err != nil {
		t.Errorf("Auxiliary flags should be ignored: %v", err)
	}
}

func TestTrailing(t *testing.T) {
	t.Parallel()

	if err := trailing([]string{"x"}, 1, "usage"); err != nil {
		t.Errorf("Expected one trailing arg to pass: %v", err)
	}
	if err := trailing(nil, 1, "atlasman trello --add-list BOARD LIST"); err == nil {
		t.Error("Expected an error for a missing trailing argument")
	}
	if err := trailing([]string{"a", "b"}, 1, "usage"); err == nil {
		t.Error("Expected an error for surplus trailing arguments")
	}
}
