//go:build !windows

package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"
)

// processGone is true once pid no longer exists or is a zombie waiting to
// be reaped.
func processGone(pid int) bool {
	if err := unix.Kill(pid, 0); errors.Is(err, unix.ESRCH) {
		return true
	}
	stat, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return false
	}
	fields := strings.Fields(string(stat[strings.LastIndexByte(string(stat), ')')+1:]))
	return len(fields) > 0 && fields[0] == "Z"
}

func TestTypst_TimeoutKillsProcessGroup(t *testing.T) {
	command, themeDir := setup(t)

	pidFile := filepath.Join(t.TempDir(), "child.pid")
	t.Setenv("FLASHRESUME_CHILD_PID", pidFile)

	c, err := NewTypst(
		command,
		WithThemeDir(themeDir),
		WithTimeout(300*time.Millisecond),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), []byte("SPAWN"))
	assert.ErrorContains(t, err, "timed out after 300ms")

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return processGone(pid) }, 5*time.Second, 50*time.Millisecond)
}

func TestKillProcessGroup_Done(t *testing.T) {
	assert.ErrorIs(t, killProcessGroup(1<<22), os.ErrProcessDone)
}
