//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/natmusissunny/legalrights/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alive reports whether pid exists, using signal 0.
func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestBrowserManager_Close_KillsEveryLauncher(t *testing.T) {
	t.Parallel()

	bm, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)

	_, releaseRetired, err := bm.Page()
	require.NoError(t, err)
	retired := bm.LauncherPID()

	_, release, err := bm.Page()
	require.NoError(t, err)
	current := bm.LauncherPID()
	require.True(t, alive(retired))
	require.True(t, alive(current))

	require.NoError(t, bm.Close())
	release()
	releaseRetired()
	time.Sleep(100 * time.Millisecond)

	assert.False(t, alive(retired), "retired launcher still running")
	assert.False(t, alive(current), "current launcher still running")
}
