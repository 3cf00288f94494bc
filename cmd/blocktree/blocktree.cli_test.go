package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test data constants
const (
	testValidExpr    = "(var op var) operator (var op (op var))"
	testInvalidExpr  = "(var( op var) operator (var op (op var))"
	testBracketExpr  = "[a,[b,c],d]"
	testBracketYAML  = "open: \"[\"\nclose: \"]\"\ndelimiter: \",\"\n"
	testBadTagsYAML  = "open: \"((\"\nclose: \")\"\n"
	testVersionsYAML = "project:\n  name: go-blocktree\n  version: 9.8.7\ngit:\n  commit: abc123\n  branch: main\n"
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "expr.txt"), []byte(testValidExpr), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "invalid.txt"), []byte(testInvalidExpr), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "brackets.yaml"), []byte(testBracketYAML), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.yaml"), []byte(testBadTagsYAML), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "versions.yaml"), []byte(testVersionsYAML), FilePermissions))

	return tmpDir
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run(nil, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), CLIName)
	assert.Contains(t, stdout.String(), CmdNameParse)
}

func TestRun_UnknownCommand(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{"unknown"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stdout.String(), ErrMsgUnknownCommand)
}

func TestRun_DispatchesParse(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameParse, "-e", testValidExpr}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, testValidExpr+"\n", stdout.String())
}

// ==================== Help command tests ====================

func TestHelp_Commands(t *testing.T) {
	tests := []struct {
		cmd      string
		expected string
	}{
		{CmdNameParse, HelpParseUsage},
		{CmdNameTokens, HelpTokensUsage},
		{CmdNameValidate, HelpValidateUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			stdout := &bytes.Buffer{}

			exitCode := runHelp([]string{tt.cmd}, stdout)

			assert.Equal(t, ExitCodeSuccess, exitCode)
			assert.Contains(t, stdout.String(), tt.expected)
		})
	}
}

func TestHelp_UnknownCommand(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := runHelp([]string{"unknown"}, stdout)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stdout.String(), ErrMsgUnknownCommand)
}

// ==================== Parse command tests ====================

func TestParse_TextFromFile(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-i", filepath.Join(tmpDir, "expr.txt")}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, testValidExpr+"\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestParse_FromStdin(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-i", InputSourceStdin}, strings.NewReader("  "+testValidExpr+"\n"), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, testValidExpr+"\n", stdout.String())
}

func TestParse_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "(a b) c", "-F", OutputFormatJSON}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode)

	var doc struct {
		Tokens   []string `json:"tokens"`
		Children []struct {
			Tokens []string `json:"tokens"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []string{"(a b)", "c"}, doc.Tokens)
	require.Len(t, doc.Children, 1)
	assert.Equal(t, []string{"a", "b"}, doc.Children[0].Tokens)
}

func TestParse_YAML(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "(a b) c", "--format", OutputFormatYAML}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []interface{}{"(a b)", "c"}, doc["tokens"])
}

func TestParse_Tree(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "(a b) c", "-F", OutputFormatTree}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), "block tokens=2 children=1")
	assert.Contains(t, stdout.String(), "  block tokens=2 children=0")
}

func TestParse_UnbalancedTags(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-i", filepath.Join(tmpDir, "invalid.txt")}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeValidationError, exitCode)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), ErrMsgBuildFailed)
	assert.Contains(t, stderr.String(), "Open: 4 Closed: 3")
}

func TestParse_MaxDepth(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "(a (b (c d)))", "--max-depth", "1"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeValidationError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgBuildFailed)
}

func TestParse_CustomTagsFromConfig(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{
		"-e", testBracketExpr,
		"-c", filepath.Join(tmpDir, "brackets.yaml"),
		"-F", OutputFormatJSON,
	}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode, stderr.String())

	var doc struct {
		Tokens []string `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []string{"a", "[b,c]", "d"}, doc.Tokens)
}

func TestParse_FlagsOverrideConfig(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{
		"-e", "[a;b,c]",
		"-c", filepath.Join(tmpDir, "brackets.yaml"),
		"--delim", ";",
		"-F", OutputFormatJSON,
	}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode, stderr.String())

	var doc struct {
		Tokens []string `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []string{"a", "b,c"}, doc.Tokens)
}

func TestParse_InvalidTagConfig(t *testing.T) {
	tmpDir := setupTestData(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", testValidExpr, "-c", filepath.Join(tmpDir, "bad.yaml")}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidTags)
}

func TestParse_IdenticalTagFlags(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "|a|", "--open", "|", "--close", "|"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidTags)
}

func TestParse_MissingInput(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse(nil, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgMissingInput)
}

func TestParse_ConflictingInput(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "a", "-i", InputSourceStdin}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgConflictingInput)
}

func TestParse_MissingFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-i", filepath.Join(t.TempDir(), "missing.txt")}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeInputError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgReadFileFailed)
}

func TestParse_InvalidFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "a", "-F", "xml"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidFormat)
}

func TestParse_VerboseLogsToStderr(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runParse([]string{"-e", "(a b) c", "-v"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, "(a b) c\n", stdout.String())
	assert.Contains(t, stderr.String(), "DEBUG")
}

// ==================== Tokens command tests ====================

func TestTokens_Text(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runTokens([]string{"-e", testValidExpr}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, "0\t\"(var op var)\"\n1\t\"operator\"\n2\t\"(var op (op var))\"\n", stdout.String())
}

func TestTokens_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runTokens([]string{"-e", "(a (b) c)", "-F", OutputFormatJSON}, strings.NewReader(""), stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode)

	var out tokensOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, []string{"a", "(b)", "c"}, out.Tokens)
	assert.True(t, out.Bounded)
	assert.Equal(t, 1, out.Blocks)
}

func TestTokens_NoDelimiter(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runTokens([]string{"-e", "a b c", "--no-delim"}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, "0\t\"a b c\"\n", stdout.String())
}

func TestTokens_InvalidFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runTokens([]string{"-e", "a", "-F", OutputFormatYAML}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidFormat)
}

// ==================== Validate command tests ====================

func TestValidate_Balanced(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runValidate([]string{"-e", testValidExpr}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Equal(t, ValidationTextSuccess+"\n", stdout.String())
}

func TestValidate_Unbalanced(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runValidate([]string{"-e", testInvalidExpr}, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeValidationError, exitCode)
	assert.Contains(t, stdout.String(), "Not all tags in the string are closed.")
	assert.Contains(t, stdout.String(), "Open: 4 Closed: 3")
	assert.Contains(t, stdout.String(), testInvalidExpr)
}

func TestValidate_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runValidate([]string{"-e", testInvalidExpr, "-F", OutputFormatJSON}, strings.NewReader(""), stdout, stderr)
	assert.Equal(t, ExitCodeValidationError, exitCode)

	var out validateOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.False(t, out.Valid)
	assert.Equal(t, 4, out.Open)
	assert.Equal(t, 3, out.Closed)
	assert.NotEmpty(t, out.Log)
}

// ==================== Version command tests ====================

func TestVersion_TextFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runVersion(nil, stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), CLIName)
}

func TestVersion_JSONFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runVersion([]string{"-F", OutputFormatJSON}, stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), "\"version\":")
	assert.Contains(t, stdout.String(), "\"go_version\":")
}

func TestVersion_InvalidFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runVersion([]string{"-F", "xml"}, stdout, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidFormat)
}

func TestVersion_ReportsDefaults(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runVersion(nil, stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), `Default tags: open="(" close=")" delimiter=" "`)
	assert.Contains(t, stdout.String(), "Default max depth: 0")
	assert.Contains(t, stdout.String(), "memory, postgres")
}

func TestVersion_JSONReportsDefaults(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := runVersion([]string{"--format", OutputFormatJSON}, stdout, stderr)
	require.Equal(t, ExitCodeSuccess, exitCode)

	var report buildReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, "(", report.Tags.Open)
	assert.Equal(t, ")", report.Tags.Close)
	assert.Equal(t, " ", report.Tags.Delimiter)
	assert.Contains(t, report.Drivers, "memory")
	assert.Contains(t, report.Drivers, "postgres")
}

func TestNewBuildReport_FromVersionsFile(t *testing.T) {
	tmpDir := setupTestData(t)

	report := newBuildReport(findVersionsFile([]string{
		filepath.Join(tmpDir, "missing.yaml"),
		filepath.Join(tmpDir, "versions.yaml"),
	}))

	assert.Equal(t, "9.8.7", report.Version)
	assert.Equal(t, "abc123", report.Commit)
	assert.Equal(t, "main", report.Branch)
	assert.Equal(t, VersionUnknown, report.BuildTime)
	assert.NotEmpty(t, report.GoVersion)
}

func TestNewBuildReport_NoFile(t *testing.T) {
	vf := findVersionsFile([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Nil(t, vf)

	report := newBuildReport(vf)
	assert.Equal(t, VersionUnknown, report.Version)
	assert.Equal(t, VersionUnknown, report.Commit)
}
