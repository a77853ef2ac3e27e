package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediadiary/internal/view"
)

func TestExportImportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "add", "Arrival", "--type", "film", "--finish", "2024-03-01", "--rating", "9", "--notes", "heptapods, circles")
	mustRunCLI(t, env, "add-pending", "Hades II", "--type", "videogame", "--hype", "8")

	exportPath := filepath.Join(env.baseDir, "exports", "diary.csv")
	out := mustRunCLI(t, env, "export", exportPath)
	requireContains(t, out, "Exported 2 entries")

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	requireContains(t, string(data), `"heptapods, circles"`)

	out = mustRunCLI(t, env, "export", exportPath)
	requireContains(t, out, "Previous file saved as "+exportPath+".bak")

	other := setupCLITestEnv(t)
	badRow := ",,film,,,,,,,,,,,\n"
	importPath := filepath.Join(other.baseDir, "import.csv")
	if err := os.WriteFile(importPath, append(data, badRow...), 0o644); err != nil {
		t.Fatalf("write import: %v", err)
	}

	out = mustRunCLI(t, other, "import", importPath)
	requireContains(t, out, "Imported 2 new, 0 updated, 1 skipped")
	requireContains(t, out, "line 4: Title is required")

	res := listJSON(t, other, "--view", "pending")
	if len(res.Entries) != 1 || res.Entries[0].Title != "Hades II" {
		t.Fatalf("unexpected pending entries after import: %#v", res.Entries)
	}

	out = mustRunCLI(t, other, "import", importPath)
	requireContains(t, out, "Imported 0 new, 2 updated, 1 skipped")
}

func TestExportDefaultName(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Chdir(env.baseDir)
	mustRunCLI(t, env, "add", "Heat", "--type", "film")

	out := mustRunCLI(t, env, "export")
	name := defaultExportName(time.Now())
	requireContains(t, out, name)
	if _, err := os.Stat(filepath.Join(env.baseDir, name)); err != nil {
		t.Fatalf("expected export in working directory: %v", err)
	}
}

func TestImportMalformedFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "bad.csv")
	if err := os.WriteFile(path, []byte("title,type\nHeat,film\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	_, _, err := runCLI(t, env, "import", path)
	if err == nil || !strings.Contains(err.Error(), "missing columns") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "add", "Alien", "--type", "film", "--finish", "2024-01-02", "--rating", "8")
	mustRunCLI(t, env, "add", "Brazil", "--type", "film", "--finish", "2024-01-03", "--rating", "7")
	mustRunCLI(t, env, "add", "Old Paper", "--type", "paper", "--rating", "N/A", "--status", "unknown-dates")
	mustRunCLI(t, env, "add-pending", "Dune", "--type", "book")

	out := mustRunCLI(t, env, "stats")
	requireContains(t, out, "Total:       4")
	requireContains(t, out, "Average:     7.5/10 (2 rated)")

	out = mustRunCLI(t, env, "stats", "--json")
	var stats view.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Completed != 3 || stats.Pending != 1 || stats.RatedCount != 2 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
	if stats.ActiveByType["film"] != 2 || stats.ActiveByType["book"] != 0 || stats.ByType["book"] != 1 {
		t.Fatalf("unexpected per-type counts: %#v", stats)
	}
}
