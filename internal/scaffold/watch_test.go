package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
)

func TestWatchRecompilesOnChange(t *testing.T) {
	f := newFixture(t)
	manifestPath := filepath.Join(t.TempDir(), "languages.tsv")
	require.NoError(t, os.WriteFile(manifestPath, []byte("a\ta.txt\talpine\t\tcat a.txt\tA\n"), 0644))

	var (
		mu     sync.Mutex
		passes []*Result
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan apperrors.Error, 1)
	go func() {
		done <- f.compiler(false).Watch(ctx, manifestPath, func(res *Result, err apperrors.Error) {
			if err != nil {
				return
			}
			mu.Lock()
			passes = append(passes, res)
			mu.Unlock()
		})
	}()

	// give the watcher time to register before the first write
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(manifestPath, []byte("b\tb.txt\talpine\t\tcat b.txt\tB\n"), 0644))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(f.root, "b", "b.txt"))
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, passes)
	assert.Equal(t, []string{"b"}, passes[len(passes)-1].Scaffolded)
}

func TestWatchMissingDirectory(t *testing.T) {
	f := newFixture(t)
	err := f.compiler(false).Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "m.tsv"), nil)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrWatch)
}
