package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/config"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestCollectWalksSortedAndSkipsOutputDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "b.cs"), "class B {}")
	write(t, filepath.Join(dir, "sub", "a.cs"), "class A {}")
	write(t, filepath.Join(dir, "obj", "gen.cs"), "class G {}")
	write(t, filepath.Join(dir, "notes.txt"), "")

	files, err := Collect([]string{dir, filepath.Join(dir, "b.cs")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.cs"), filepath.Join(dir, "sub", "a.cs")}, files)
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func sampleProject(t *testing.T) (string, config.Config) {
	t.Helper()
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.cs"), "namespace N { class A { int x; } }\n")
	write(t, filepath.Join(dir, "b.cs"), "namespace N { class B { int y; } }\n")
	cfg := config.Default()
	cfg.Path = filepath.Join(dir, config.FileName)
	return dir, cfg
}

func TestRunJoinsOutputs(t *testing.T) {
	_, cfg := sampleProject(t)
	out, err := Run(context.Background(), Request{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "restyle", out.Backend)
	require.Len(t, out.Files, 2)
	assert.Contains(t, out.Files[0].Text, "class B")
	assert.Empty(t, out.Files[1].Text)
	assert.Contains(t, out.Joined, "namespace N")
	assert.NotEmpty(t, out.Timings.Phases)
	assert.False(t, out.Cached)
}

func TestRunUsesCache(t *testing.T) {
	_, cfg := sampleProject(t)
	cache, err := OpenCacheDir(t.TempDir())
	require.NoError(t, err)

	first, err := Run(context.Background(), Request{Config: cfg, Cache: cache})
	require.NoError(t, err)
	second, err := Run(context.Background(), Request{Config: cfg, Cache: cache})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Joined, second.Joined)

	cfg.Output.Backend = "minify"
	third, err := Run(context.Background(), Request{Config: cfg, Cache: cache})
	require.NoError(t, err)
	assert.False(t, third.Cached)

	require.NoError(t, cache.DropAll())
	fourth, err := Run(context.Background(), Request{Config: cfg, Cache: cache})
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestNilCacheStoresNothing(t *testing.T) {
	var c *Cache
	_, ok, err := c.Get([32]byte{1})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Put([32]byte{1}, &CacheEntry{}))
}

func TestRunUnknownBackend(t *testing.T) {
	_, cfg := sampleProject(t)
	cfg.Output.Backend = "cobol"
	_, err := Run(context.Background(), Request{Config: cfg})
	assert.Error(t, err)
}

func TestStrictFailsOnResolutionErrors(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.cs"), "using Missing.Namespace;\nclass A {}\n")
	cfg := config.Default()
	cfg.Path = filepath.Join(dir, config.FileName)

	res, err := Check(context.Background(), Request{Config: cfg}, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Diagnostics())

	cfg.Project.Strict = true
	_, err = Check(context.Background(), Request{Config: cfg}, 0)
	assert.True(t, errors.Is(err, ErrStrict), "got %v", err)
}

func TestWatchRerunsOnChange(t *testing.T) {
	dir, _ := sampleProject(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, 20*time.Millisecond, func(context.Context) error {
			if runs.Add(1) == 2 {
				cancel()
			}
			return nil
		}, nil)
	}()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		write(t, filepath.Join(dir, "a.cs"), "namespace N { class A { int z; } }\n")
		return runs.Load() >= 2
	}, 5*time.Second, 100*time.Millisecond)
	require.NoError(t, <-done)
}
