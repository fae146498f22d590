package cli

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()
	original := version
	version = "1.4.0"
	t.Cleanup(func() {
		version = original
		rootCmd.SetArgs(nil)
		_ = versionCmd.Flags().Set("short", "false")
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(append([]string{"version"}, args...))
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestVersionCmd(t *testing.T) {
	out := runVersion(t)

	assert.Contains(t, out, "gradebook 1.4.0 (")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "1.4.0\n", runVersion(t, "--short"))
}

func TestBuildRevision(t *testing.T) {
	rev := buildRevision()

	assert.NotEmpty(t, rev)
	assert.LessOrEqual(t, len(rev), 12)
}
