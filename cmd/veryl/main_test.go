package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"veryl/internal/version"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	cmd, err := root.ExecuteC()
	if cmd != nil {
		finishRun(cmd)
	}
	return out.String(), errOut.String(), err
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

const cleanModule = `module Top (
    i_clk: input clock,
    i_rst: input reset,
    o_q: output logic,
) {
    always_ff (i_clk, i_rst) {
        if_reset {
            o_q = 0;
        } else {
            o_q = ~o_q;
        }
    }
}
`

func TestCheckCleanProject(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Veryl.toml":    "[project]\nname = \"demo\"\n",
		"src/top.veryl": cleanModule,
	})
	_, stderr, err := runCLI(t, "check", "--dir", dir, "--ui", "off", "--color", "off")
	require.NoError(t, err)
	require.Contains(t, stderr, "checked 1 files: 0 errors")
}

func TestCheckReportsErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Veryl.toml": "[project]\nname = \"demo\"\n",
		"a.veryl":    "module A (c: input clock, d: input clock) { var r: logic; always_ff { r = 0; } }\n",
	})
	stdout, _, err := runCLI(t, "check", "--dir", dir, "--format", "short", "--ui", "off")
	require.ErrorIs(t, err, errDiagnostics)
	require.Contains(t, stdout, "error SEM3200 a.veryl:1:")
}

func TestCheckJSONFormat(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Veryl.toml": "[project]\nname = \"demo\"\n",
		"a.veryl":    "module A { assign x = y; }\n",
	})
	stdout, _, err := runCLI(t, "check", "--dir", dir, "--format", "json", "--ui", "off")
	require.ErrorIs(t, err, errDiagnostics)

	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Category string `json:"category"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, 2, out.Count)
	for _, d := range out.Diagnostics {
		require.Equal(t, "SEM3002", d.Code)
		require.Equal(t, "resolution", d.Category)
	}
}

func TestCheckRejectsBadFlags(t *testing.T) {
	_, _, err := runCLI(t, "check", "--format", "xml")
	require.ErrorContains(t, err, "unknown format")

	_, _, err = runCLI(t, "--color", "sometimes", "version")
	require.ErrorContains(t, err, "invalid --color value")

	_, _, err = runCLI(t, "--trace-level", "deep", "version")
	require.ErrorContains(t, err, "invalid trace level")

	_, _, err = runCLI(t, "check", "--dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDumpSelectedTables(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Veryl.toml":    "[project]\nname = \"demo\"\n",
		"src/top.veryl": cleanModule,
	})
	stdout, _, err := runCLI(t, "dump", "--dir", dir, "--namespace-table")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "NamespaceTable ["), stdout)
	require.NotContains(t, stdout, "SymbolTable")

	stdout, _, err = runCLI(t, "dump", "--dir", dir)
	require.NoError(t, err)
	for _, section := range []string{"SymbolTable [", "AssignList [", "NamespaceTable [", "TypeDag ["} {
		require.Contains(t, stdout, section)
	}
}

func TestDumpJSONWithTrace(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Veryl.toml":    "[project]\nname = \"demo\"\n",
		"src/top.veryl": cleanModule,
	})
	tracePath := filepath.Join(t.TempDir(), "trace.ndjson")
	stdout, _, err := runCLI(t, "--trace", tracePath, "dump", "--dir", dir, "--symbol-table", "--format", "json")
	require.NoError(t, err)

	var dump map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &dump))
	require.Equal(t, "demo", dump["project"])

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"check"`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "--color", "off", "version")
	require.NoError(t, err)
	require.Equal(t, version.Banner(false)+"\n", stdout)

	stdout, _, err = runCLI(t, "version", "--format", "json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	require.Equal(t, version.Version, info.Version)

	stdout, _, err = runCLI(t, "version", "--hash")
	require.NoError(t, err)
	require.Equal(t, orUnknown(version.GitCommit)+"\n", stdout)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got, in)
	}
	_, err := readUIMode("maybe")
	require.Error(t, err)
	require.True(t, shouldUseTUI(uiModeOn))
	require.False(t, shouldUseTUI(uiModeOff))
}
