package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type record struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func TestTableAlignsColumns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(Table, &buf)

	records := []record{{"b1", "Chores"}, {"b2", "A much longer board name"}}
	rows := [][]string{{"b1", "Chores"}, {"b2", "A much longer board name"}}
	if err := p.Print(records, []string{"ID", "NAME"}, rows); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "b1") || !strings.Contains(lines[2], "A much longer board name") {
		t.Errorf("Unexpected table body: %q", buf.String())
	}
	// Rows must share the column boundary.
	if strings.Index(lines[1], "Chores") != strings.Index(lines[2], "A much") {
		t.Errorf("Columns are not aligned:\n%s", buf.String())
	}
}

func TestTableEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(Table, &buf)
	if err := p.Print(nil, []string{"ID"}, nil); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No results.") {
		t.Errorf("Expected an empty-results message, got %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(JSON, &buf)

	records := []record{{"b1", "Chores"}}
	if err := p.Print(records, []string{"ID", "NAME"}, nil); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	var decoded []record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 || decoded[0].Name != "Chores" {
		t.Errorf("Unexpected JSON output: %q", buf.String())
	}
}

func TestYAMLOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(YAML, &buf)

	records := []record{{"b1", "Chores"}}
	if err := p.Print(records, nil, nil); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	var decoded []record
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 || decoded[0].ID != "b1" {
		t.Errorf("Unexpected YAML output: %q", buf.String())
	}
}

func TestUnknownFormatFallsBackToTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New("csv", &buf)
	if err := p.Print(nil, []string{"ID"}, [][]string{{"x"}}); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !strings.Contains(buf.String(), "x") {
		t.Errorf("Expected table output, got %q", buf.String())
	}
}
