package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// createTestWorkspace writes a minimal two-project workspace fixture.
func createTestWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		".lunar/workspace.yml": `
projects:
  app: app
  lib: lib
`,
		"app/lunar.yml": `
dependsOn:
  - lib
tasks:
  build:
    command: sh
    args: ["-c", "true"]
`,
		"lib/lunar.yml": `
tasks:
  build:
    command: sh
    args: ["-c", "true"]
`,
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "lunar" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "lunar")
	}

	expectedCmds := []string{"run", "sync", "graph"}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestGraphCommand(t *testing.T) {
	root := createTestWorkspace(t)

	output, err := executeCommand(rootCmd, "--workspace", root, "graph", "app:build")
	if err != nil {
		t.Fatalf("graph failed: %v", err)
	}
	if !strings.Contains(output, "1. lib:build") || !strings.Contains(output, "2. app:build") {
		t.Errorf("unexpected plan:\n%s", output)
	}
}

func TestGraphCommandRejectsBadTarget(t *testing.T) {
	root := createTestWorkspace(t)

	if _, err := executeCommand(rootCmd, "--workspace", root, "graph", "not-a-target"); err == nil {
		t.Errorf("malformed target should fail")
	}
}
