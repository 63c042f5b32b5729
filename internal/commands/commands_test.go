package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encutil/internal/commands"
	"github.com/idelchi/encutil/internal/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var cfg config.Config

	root := commands.NewRootCommand(&cfg, "test")

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	// A nil slice makes cobra fall back to os.Args.
	root.SetArgs(append([]string{}, args...))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))

	err := root.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "encrypt", "-s", "-p", "secret", "Encrypt ME!")
	require.NoError(t, err)

	ciphertext := strings.TrimSpace(out)
	require.NotEmpty(t, ciphertext)

	out, _, err = execute(t, "dec", "-s", "-p", "secret", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "Encrypt ME!\n", out)
}

func TestDecryptKnownString(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "decrypt", "--string", "--password", "123",
		"CjM5lgRAUVdW88HvlzYEt2RliGhRmz1KqCXQ0UiAi18JufFGWkA1o9NlCPRHGONp")
	require.NoError(t, err)
	assert.Equal(t, "TEST BYTES\n", out)
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	passwordFile := filepath.Join(dir, "password")

	require.NoError(t, os.WriteFile(plain, []byte("some notes"), 0o600))
	require.NoError(t, os.WriteFile(passwordFile, []byte("from-file\n"), 0o600))

	_, stderr, err := execute(t, "enc", "--password-file", passwordFile, "--stats", "-q", plain)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Processed: 1")
	assert.FileExists(t, plain+".encrypted")

	_, _, err = execute(t, "decrypt", "--password", "from-file", "--decrypt-ext", ".out", plain+".encrypted")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "notes.txt.out"))
	require.NoError(t, err)
	assert.Equal(t, "some notes", string(got))
}

func TestPasswordFromEnvironment(t *testing.T) {
	t.Setenv("ENCUTIL_PASSWORD", "123")

	out, _, err := execute(t, "decrypt", "-s",
		"CjM5lgRAUVdW88HvlzYEt2RliGhRmz1KqCXQ0UiAi18JufFGWkA1o9NlCPRHGONp")
	require.NoError(t, err)
	assert.Equal(t, "TEST BYTES\n", out)
}

func TestShowRedactsPassword(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "encrypt", "--show", "-p", "hunter2", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "<redacted>")
	assert.NotContains(t, out, "hunter2")
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no inputs", args: []string{"encrypt", "-p", "x"}, want: "requires at least 1 arg"},
		{name: "no password", args: []string{"encrypt", "-s", "data"}, want: config.ErrNoPassword.Error()},
		{name: "conflicting passwords", args: []string{"encrypt", "-p", "x", "--password-file", "f", "data"}, want: "--password"},
		{name: "verbose and quiet", args: []string{"encrypt", "-p", "x", "-v", "-q", "data"}, want: "--verbose"},
		{name: "bad parallel", args: []string{"encrypt", "-p", "x", "-j", "0", "data"}, want: "--parallel"},
		{name: "wrong password", args: []string{
			"decrypt", "-s", "-p", "124",
			"CjM5lgRAUVdW88HvlzYEt2RliGhRmz1KqCXQ0UiAi18JufFGWkA1o9NlCPRHGONp",
		}, want: "padding"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tc.args...)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRootWithoutSubcommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "encrypt")

	_, _, err = execute(t, "encrpyt", "file")
	require.ErrorContains(t, err, `unknown command "encrpyt"`)
}
