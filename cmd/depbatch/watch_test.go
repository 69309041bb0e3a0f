package main

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kbukum/depbatch/logger"
)

func TestWatchFiles_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "projects.yml")
	included := filepath.Join(dir, "shared.yml")
	other := filepath.Join(dir, "unrelated.txt")
	for _, f := range []string{root, included, other} {
		require.NoError(t, os.WriteFile(f, []byte("v1"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	ran := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, logger.Nop(), root, 50*time.Millisecond, func() ([]string, error) {
			runs.Add(1)
			ran <- struct{}{}
			return []string{root, included}, nil
		})
	}()

	wait := func() {
		t.Helper()
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatal("plan was not re-run")
		}
	}
	wait()

	require.NoError(t, os.WriteFile(included, []byte("v2"), 0o644))
	wait()

	require.NoError(t, os.WriteFile(other, []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(root, []byte("v2"), 0o644))
	wait()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	require.Equal(t, int32(3), runs.Load())
}

func TestWatchFiles_KeepsWatchingAfterError(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "projects.yml")
	require.NoError(t, os.WriteFile(root, []byte("broken"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{}, 10)
	go func() {
		_ = watchFiles(ctx, logger.Nop(), root, 50*time.Millisecond, func() ([]string, error) {
			ran <- struct{}{}
			return nil, os.ErrInvalid
		})
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d did not happen", i+1)
		}
		require.NoError(t, os.WriteFile(root, []byte("still broken"), 0o644))
	}
}
