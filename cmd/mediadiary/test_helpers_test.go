package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediadiary/internal/view"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MEDIADIARY_DATA_DIR", "")

	dataDir := filepath.Join(base, "data")
	configPath := filepath.Join(base, "mediadiary.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		dataDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, dataDir: dataDir, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if env != nil && env.configPath != "" {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, env, args...)
	if err != nil {
		t.Fatalf("%s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func listJSON(t *testing.T, env *cliTestEnv, args ...string) view.Result {
	t.Helper()
	out := mustRunCLI(t, env, append([]string{"list", "--json"}, args...)...)
	var result view.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return result
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
