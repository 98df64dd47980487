package cli

import (
	"testing"

	"github.com/tylerjwoodfin/atlas-man/internal/config"
)

func TestCollectAliases(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Trello.AliasIDs["todo"] = config.TrelloAlias{
		BoardID: "5f0c7f6e8a1b2c3d4e5f6071",
		ListID:  "5f0c7f6e8a1b2c3d4e5f6072",
	}
	cfg.Jira.AliasIDs["ops"] = "OPS"

	all := collectAliases(cfg)
	if len(all) != 2 {
		t.Fatalf("Expected 2 aliases, got %d: %+v", len(all), all)
	}
	if all[0].Name != "ops" || all[0].Kind != "jira" || all[0].Target != "OPS" {
		t.Errorf("Unexpected first row: %+v", all[0])
	}
	if all[1].Kind != "trello" || all[1].Target != "5f0c7f6e8a1b2c3d4e5f6071 / 5f0c7f6e8a1b2c3d4e5f6072" {
		t.Errorf("Unexpected second row: %+v", all[1])
	}
}

func TestCollectAliasesEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	all := collectAliases(config.DefaultConfig())
	if all == nil {
		t.Fatal("Expected an empty slice, got nil (json output would print null)")
	}
	if len(all) != 0 {
		t.Errorf("Expected no aliases, got %+v", all)
	}
}

func TestRemoveAlias(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Trello.AliasIDs["todo"] = config.TrelloAlias{BoardID: "5f0c7f6e8a1b2c3d4e5f6071"}
	cfg.Jira.AliasIDs["ops"] = "OPS"

	kinds, err := removeAlias(cfg, "ops")
	if err != nil {
		t.Fatalf("removeAlias failed: %v", err)
	}
	if len(kinds) != 1 || kinds[0] != "jira" {
		t.Errorf("Expected the jira kind, got %v", kinds)
	}
	if _, ok := cfg.Trello.AliasIDs["todo"]; !ok {
		t.Error("Removing a jira alias must not touch trello aliases")
	}

	if _, err := removeAlias(cfg, "missing"); err == nil {
		t.Error("Expected an error for an unknown alias")
	}
}

func TestRemoveAliasPresentInBothKinds(t *testing.T) {
	t.Parallel()

	// Only possible via a hand-edited config file.
	cfg := config.DefaultConfig()
	cfg.Trello.AliasIDs["work"] = config.TrelloAlias{BoardID: "5f0c7f6e8a1b2c3d4e5f6071"}
	cfg.Jira.AliasIDs["work"] = "WORK"

	kinds, err := removeAlias(cfg, "work")
	if err != nil {
		t.Fatalf("removeAlias failed: %v", err)
	}
	if len(kinds) != 2 || kinds[0] != "trello" || kinds[1] != "jira" {
		t.Errorf("Expected both kinds to be reported, got %v", kinds)
	}
	if len(cfg.Trello.AliasIDs) != 0 || len(cfg.Jira.AliasIDs) != 0 {
		t.Error("Expected the alias to be removed from both kinds")
	}
}
