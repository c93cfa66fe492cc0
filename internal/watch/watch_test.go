package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	otherPath := filepath.Join(dir, "other.txt")

	changed := make(chan struct{}, 10)
	w := &Watcher{
		Files:    []string{envPath},
		Debounce: 20 * time.Millisecond,
		OnChange: func() { changed <- struct{}{} },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(otherPath, []byte("x"), 0644))
	select {
	case <-changed:
		t.Fatal("unrelated file should not trigger OnChange")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(envPath, []byte("SLACK_BOT_TOKEN=x\n"), 0644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called after writing the env file")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := &Watcher{Files: []string{filepath.Join(t.TempDir(), "missing", ".env")}}
	require.Error(t, w.Run(context.Background()))
}
