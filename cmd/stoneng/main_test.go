package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartProfileFlushesOnStop(t *testing.T) {
	dir := t.TempDir()
	stop, err := startProfile("cpu", dir)
	require.NoError(t, err)
	stop()

	info, err := os.Stat(filepath.Join(dir, "cpu.pprof"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestStartProfileModes(t *testing.T) {
	stop, err := startProfile("", t.TempDir())
	require.NoError(t, err)
	stop()

	_, err = startProfile("trace-everything", t.TempDir())
	assert.ErrorContains(t, err, "unknown profile mode")
}
