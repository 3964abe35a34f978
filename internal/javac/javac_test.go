package javac

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	got := Args(Options{ClassPath: "/bin:/lib/core.jar", OutDir: "/bin"}, []string{"/src/A.java", "/src/B.java"})
	assert.Equal(t, []string{
		"-g", "-Xemacs",
		"-source", "1.8", "-target", "1.8",
		"-encoding", "utf8",
		"-classpath", "/bin:/lib/core.jar",
		"-nowarn",
		"-d", "/bin",
		"/src/A.java", "/src/B.java",
	}, got)

	// -Xemacs only exists in ecj, so the default command must be ecj.
	assert.Equal(t, "ecj", DefaultCommand)

	got = Args(Options{Source: "11", Target: "17"}, nil)
	assert.Equal(t, "11", got[3])
	assert.Equal(t, "17", got[5])
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "javac.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestExecSuccessAndFailure(t *testing.T) {
	ok := writeScript(t, "exit 0\n")
	res, err := Exec{Command: ok}.Compile(context.Background(), []string{"-g"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	fail := writeScript(t, "echo \"A.java:3: error: x cannot be resolved\" >&2\nexit 1\n")
	res, err = Exec{Command: fail}.Compile(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "A.java:3: error: x cannot be resolved\n", res.RawLog)
}

func TestExecMissingBinary(t *testing.T) {
	_, err := Exec{Command: filepath.Join(t.TempDir(), "nope")}.Compile(context.Background(), nil)
	require.Error(t, err)

	_, err = Exec{}.Compile(context.Background(), nil)
	assert.ErrorContains(t, err, "not configured")
}
