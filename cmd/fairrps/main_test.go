package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairrps/internal/commit"
)

type runOutput struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) runOutput {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "missing.hcl")
	args = append([]string{"--config", cfg, "--no-color"}, args...)
	code := run(args, Streams{In: strings.NewReader(stdin), Out: &stdout, Err: &stderr})
	return runOutput{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func field(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			return v
		}
	}
	t.Fatalf("no %q line in output:\n%s", prefix, out)
	return ""
}

func TestPlayRound(t *testing.T) {
	res := runCLI(t, "1\n", "Rock", "Paper", "Scissors")
	require.Equal(t, 0, res.code, res.stderr)

	digest := field(t, res.stdout, "HMAC: ")
	key := field(t, res.stdout, "Key: ")
	computer := field(t, res.stdout, "Computer's move: ")
	assert.Equal(t, "Rock", field(t, res.stdout, "Enter your move: Your move: "))
	assert.True(t, commit.Verify(key, computer, digest))
	assert.Contains(t, res.stdout, "0 - Exit")
}

func TestPlayExplicitCommand(t *testing.T) {
	res := runCLI(t, "0\n", "play", "--key-bits", "512", "a", "b", "c", "d", "e")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "5 - e")
	assert.Contains(t, res.stdout, "Exiting...")
}

func TestPlaySeededPicker(t *testing.T) {
	first := runCLI(t, "1\n", "play", "--seed", "7", "Rock", "Paper", "Scissors")
	second := runCLI(t, "1\n", "play", "--seed", "7", "Rock", "Paper", "Scissors")
	require.Equal(t, 0, first.code)
	require.Equal(t, 0, second.code)

	assert.Equal(t,
		field(t, first.stdout, "Computer's move: "),
		field(t, second.stdout, "Computer's move: "))
	assert.NotEqual(t,
		field(t, first.stdout, "Key: "),
		field(t, second.stdout, "Key: "), "keys are never seeded")
}

func TestReservedMoveNamesNeedExplicitPlay(t *testing.T) {
	res := runCLI(t, "", "verify", "b", "c")
	assert.Equal(t, 1, res.code)

	res = runCLI(t, "1\n", "play", "verify", "b", "c")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "verify", field(t, res.stdout, "Enter your move: Your move: "))

	res = runCLI(t, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "reserved")
}

func TestPlayEndOfInput(t *testing.T) {
	res := runCLI(t, "", "Rock", "Paper", "Scissors")
	assert.Equal(t, 0, res.code)
	assert.NotContains(t, res.stdout, "Key: ")
}

func TestPlayValidationFailures(t *testing.T) {
	tests := map[string][]string{
		"too few":   {"a", "b"},
		"even":      {"a", "b", "c", "d"},
		"duplicate": {"a", "a", "b"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			res := runCLI(t, "1\n", args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, "Error: moves:")
			assert.Contains(t, res.stdout, "Usage:")
			assert.NotContains(t, res.stdout, "HMAC:", "no commitment before validation")
		})
	}
}

func TestNoArguments(t *testing.T) {
	res := runCLI(t, "")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestHelpTable(t *testing.T) {
	res := runCLI(t, "", "help", "Rock", "Paper", "Scissors")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "v PC/User >")
	assert.Equal(t, 3, strings.Count(res.stdout, "Draw"))
	assert.NotContains(t, res.stdout, "HMAC:")

	res = runCLI(t, "", "table", "a", "b")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "at least 3 moves")
}

func TestVerify(t *testing.T) {
	key := strings.Repeat("ab", 32)
	digest := commit.ComputeDigest(key, "Lizard")

	res := runCLI(t, "", "verify", "--key", key, "--move", "Lizard", "--hmac", digest)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Verified")

	res = runCLI(t, "", "verify", "--key", key, "--move", "Spock", "--hmac", digest)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Mismatch")
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "", "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "dev")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, writeFile(path, "game {\n key_bits = 12\n}\n"))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "Rock", "Paper", "Scissors"},
		Streams{In: strings.NewReader("1\n"), Out: &stdout, Err: &stderr})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "key_bits")
}
