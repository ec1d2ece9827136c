package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

func storeFlag(t *testing.T) string {
	t.Helper()
	return "--store=" + filepath.Join(t.TempDir(), "store.json")
}

func TestResolveCommandJSON(t *testing.T) {
	stdout, err := executeCommand(t, "resolve", "-o", "json")
	require.NoError(t, err)

	var report resolveReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, "300ms", report.Tokens["ACCORDION_TRANSITION_DURATION"])
	require.Equal(t, "moderate", report.Tokens["ACCORDION_CONTENT_PRESET"])
	require.Empty(t, report.Warnings)
}

func TestResolveCommandAppliesPresets(t *testing.T) {
	stdout, err := executeCommand(t, "resolve", "--preset", "CONTENT=soft")
	require.NoError(t, err)

	var report resolveReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	require.Equal(t, "soft", report.Tokens["ACCORDION_CONTENT_PRESET"])
	require.Equal(t, "120", report.Tokens["ACCORDION_CONTENT_STIFFNESS"])
	require.Equal(t, "moderate", report.Tokens["ACCORDION_ARROW_PRESET"])
}

func TestResolveCommandReportsWarnings(t *testing.T) {
	defs := filepath.Join(t.TempDir(), "definitions.yaml")
	require.NoError(t, os.WriteFile(defs, []byte("tokens:\n  ACCORDION_ARROW_MASS: tokens.spring('wobbly').mass\n"), 0o600))

	stdout, err := executeCommand(t, "resolve", "-o", "json", "--definitions", defs)
	require.NoError(t, err)

	var report resolveReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Warnings, 1)
	require.Equal(t, "ACCORDION_ARROW_MASS", report.Warnings[0].Token)
	require.Equal(t, "tokens.spring('wobbly').mass", report.Tokens["ACCORDION_ARROW_MASS"])
}

func TestResolveCommandErrors(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "format", args: []string{"resolve", "-o", "toml"}, message: "unknown format"},
		{name: "pair", args: []string{"resolve", "--preset", "CONTENT"}, message: "TARGET=preset"},
		{name: "preset", args: []string{"resolve", "--preset", "CONTENT=bouncy"}, message: "bouncy"},
		{name: "missing reference", args: []string{"resolve", "--reference", "missing.yaml"}, message: "--reference"},
		{name: "log format", args: []string{"resolve", "--log-format", "xml"}, message: "log.format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCommand(t, tc.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestCSSCommandRendersRootBlock(t *testing.T) {
	stdout, err := executeCommand(t, "css", "--preset", "ARROW=stiff")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, ":root {\n"))
	require.Contains(t, stdout, "  --accordion-transition-duration: 300ms;\n")
	require.Contains(t, stdout, "  --accordion-arrow-stiffness: 290;\n")
}

func TestDampingCommandScalesWithHeight(t *testing.T) {
	stdout, err := executeCommand(t, "damping", "0", "800", "--max-damping-multiplier", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "DAMPING")
	require.Contains(t, lines[1], "20.00")
	require.Contains(t, lines[2], "40.00")

	_, err = executeCommand(t, "damping", "tall")
	require.Error(t, err)
}

func TestAliasCommands(t *testing.T) {
	store := storeFlag(t)

	stdout, err := executeCommand(t, "alias", "set", "ACCORDION_ARROW_MASS", "Arrow heft", store)
	require.NoError(t, err)
	require.Contains(t, stdout, "Arrow heft")

	stdout, err = executeCommand(t, "alias", "list", store)
	require.NoError(t, err)
	require.Contains(t, stdout, "Arrow heft")

	_, err = executeCommand(t, "alias", "set", "soft", "Gentle", "--values", store)
	require.NoError(t, err)
	stdout, err = executeCommand(t, "alias", "list", "--values", store)
	require.NoError(t, err)
	require.Contains(t, stdout, "Gentle")

	_, err = executeCommand(t, "alias", "reset", store)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--yes")

	stdout, err = executeCommand(t, "alias", "reset", "--yes", store)
	require.NoError(t, err)
	require.Contains(t, stdout, "restored")

	stdout, err = executeCommand(t, "alias", "list", store)
	require.NoError(t, err)
	require.Contains(t, stdout, "Arrow weight")
	require.NotContains(t, stdout, "Arrow heft")
}

func TestAliasResetAsksOnceForBothTables(t *testing.T) {
	store := storeFlag(t)

	_, err := executeCommand(t, "alias", "set", "ACCORDION_ARROW_MASS", "Arrow heft", store)
	require.NoError(t, err)
	_, err = executeCommand(t, "alias", "set", "soft", "Gentle", "--values", store)
	require.NoError(t, err)

	restore := termIsTerminal
	termIsTerminal = func(int) bool { return true }
	t.Cleanup(func() { termIsTerminal = restore })

	reader, writer, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	_, err = writer.WriteString("y\n")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(reader)
	root.SetArgs([]string{"alias", "reset", store})
	require.NoError(t, root.Execute())
	require.Equal(t, 1, strings.Count(stdout.String(), "[y/N]"))
	require.Contains(t, stdout.String(), "restored")

	names, err := executeCommand(t, "alias", "list", store)
	require.NoError(t, err)
	require.Contains(t, names, "Arrow weight")
	require.NotContains(t, names, "Arrow heft")

	values, err := executeCommand(t, "alias", "list", "--values", store)
	require.NoError(t, err)
	require.NotContains(t, values, "Gentle")
}

func TestAliasListSurvivesCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o600))

	stdout, err := executeCommand(t, "alias", "list", "--store="+path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Arrow weight")

	_, err = os.Stat(path + ".corrupt")
	require.NoError(t, err)
}

func TestDemoRequiresTerminal(t *testing.T) {
	_, err := executeCommand(t, "demo", "--ephemeral")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a terminal")
}
