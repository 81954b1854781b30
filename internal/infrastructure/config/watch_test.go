package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(target, []byte("id: demo\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the yaml write")
	}
}

func TestWatcher_ReportsLastWriteOnce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	target := filepath.Join(dir, "demo.yaml")
	final := "id: demo\nname: Demo\n"
	require.NoError(t, os.WriteFile(target, []byte("id: de"), 0o644))
	time.Sleep(debounce / 4)
	require.NoError(t, os.WriteFile(target, []byte(final), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, final, string(data), "reported after the last write")
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the yaml writes")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("burst reported twice: %s", name)
	case <-time.After(3 * debounce):
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
