// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/statement-engine/pkg/types"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecipe(t *testing.T) {
	path := writeRecipe(t, `steps:
  - filter: "amount > 15"
  - rename:
      name: client
  - sort:
      column: client
      descending: true
  - aggregate:
      group_by: client
      sum: [amount]
`)

	steps, err := LoadRecipe(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(steps))
	}

	tbl := types.NewTable("name", "amount")
	tbl.Append(types.Record{"name": types.Text("Alice"), "amount": types.Number(10)})
	tbl.Append(types.Record{"name": types.Text("Bob"), "amount": types.Number(20)})
	tbl.Append(types.Record{"name": types.Text("Bob"), "amount": types.Number(30)})

	got, err := Apply(tbl, steps)
	if err != nil {
		t.Fatal(err)
	}

	if got.Len() != 1 {
		t.Fatalf("rows = %d, want 1", got.Len())
	}
	row := got.Rows[0]
	if row["client"].Text != "Bob" || row["amount"].Number != 50 {
		t.Errorf("row = %+v, want Bob/50", row)
	}
}

func TestLoadRecipeMissingFile(t *testing.T) {
	_, err := LoadRecipe(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing recipe")
	}
}

func TestRecipeStepValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "two transformations in one step",
			content: `steps:
  - filter: "amount > 0"
    sort:
      column: amount
`,
			wantErr: "exactly one",
		},
		{
			name: "empty step",
			content: `steps:
  - {}
`,
			wantErr: "exactly one",
		},
		{
			name: "bad filter expression",
			content: `steps:
  - filter: "amount"
`,
			wantErr: "invalid filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecipe(writeRecipe(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
