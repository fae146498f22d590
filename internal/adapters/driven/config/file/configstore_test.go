package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore(t *testing.T) {
	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")

		store, err := NewConfigStore(dir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
		assert.DirExists(t, dir)
	})

	t.Run("missing file starts empty", func(t *testing.T) {
		store, _ := newStore(t)

		assert.Empty(t, store.Keys())
		assert.NoFileExists(t, store.Path())
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[sync\nenabled ="), 0600))

		_, err := NewConfigStore(dir)

		require.Error(t, err)
	})

	t.Run("empty file is fine", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

		store, err := NewConfigStore(dir)

		require.NoError(t, err)
		assert.Empty(t, store.Keys())
	})

	t.Run("path under a file is an error", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

		_, err := NewConfigStore(filepath.Join(blocker, "config"))

		require.Error(t, err)
	})
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("cloud.token_file", "/tmp/token.json"))
	require.NoError(t, store.Set("parser.default_year", 2026))
	require.NoError(t, store.Set("sync.enabled", true))
	require.NoError(t, store.Set("watch.extensions", []string{"md", "docx"}))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "string", got: store.GetString("cloud.token_file"), want: "/tmp/token.json"},
		{name: "int", got: store.GetInt("parser.default_year"), want: 2026},
		{name: "bool", got: store.GetBool("sync.enabled"), want: true},
		{name: "slice", got: store.GetStringSlice("watch.extensions"), want: []string{"md", "docx"}},
		{name: "missing string", got: store.GetString("cloud.client_id"), want: ""},
		{name: "missing int", got: store.GetInt("sync.interval"), want: 0},
		{name: "missing bool", got: store.GetBool("logging.verbose"), want: false},
		{name: "wrong type string", got: store.GetString("sync.enabled"), want: ""},
		{name: "wrong type int", got: store.GetInt("cloud.token_file"), want: 0},
		{name: "wrong type bool", got: store.GetBool("parser.default_year"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Nil(t, store.GetStringSlice("watch.dir"))
}

func TestConfigStore_PersistsAcrossReload(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Set("parser.default_year", 2026))
	require.NoError(t, store.Set("cloud.provider", "gdrive"))
	require.NoError(t, store.Set("watch.extensions", []string{"md"}))
	require.NoError(t, store.Set("cloud.provider", "none"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	// TOML integers come back as int64.
	raw, ok := reloaded.Get("parser.default_year")
	require.True(t, ok)
	assert.Equal(t, int64(2026), raw)
	assert.Equal(t, 2026, reloaded.GetInt("parser.default_year"))
	assert.Equal(t, "none", reloaded.GetString("cloud.provider"))
	assert.Equal(t, []string{"md"}, reloaded.GetStringSlice("watch.extensions"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("cloud.client_secret", "shh"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SaveUnmarshallable(t *testing.T) {
	store, _ := newStore(t)

	err := store.Set("sync.debounce", make(chan int))

	require.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("parser.default_year", 2020+n)
			_ = store.GetInt("parser.default_year")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	year := store.GetInt("parser.default_year")
	assert.GreaterOrEqual(t, year, 2020)
	assert.Less(t, year, 2030)
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("cloud.client_secret", "shh"))
	require.NoError(t, store.Delete("cloud.client_secret"))
	require.NoError(t, store.Delete("never.set"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := store2.Get("cloud.client_secret")
	assert.False(t, ok)
}

func TestConfigStore_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("sync.interval", "15m"))
	require.NoError(t, store.Set("sync.enabled", true))
	require.NoError(t, store.Set("scheduler.history_prune.interval", "24h"))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[sync]")
	assert.Regexp(t, `(?m)^\s*interval = ['"]15m['"]`, string(content))
	assert.NotContains(t, string(content), "'sync.interval'")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "15m", store2.GetString("sync.interval"))
	assert.True(t, store2.GetBool("sync.enabled"))
	assert.Equal(t, "24h", store2.GetString("scheduler.history_prune.interval"))
}

func TestConfigStore_KeyAndTableClash(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("watch", "on"))
	require.NoError(t, store.Set("watch.dir", "/tmp/syllabi"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "on", store2.GetString("watch"))
	assert.Equal(t, "/tmp/syllabi", store2.GetString("watch.dir"))
}

func TestConfigStore_Keys(t *testing.T) {
	t.Setenv("GRADEBOOK_LOGGING__VERBOSE", "true")

	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("sync.interval", "1h"))
	require.NoError(t, store.Set("cloud.provider", "gdrive"))

	assert.Equal(t, []string{"cloud.provider", "logging.verbose", "sync.interval"}, store.Keys())
}

func TestConfigStore_EnvOverrides(t *testing.T) {
	t.Setenv("GRADEBOOK_SYNC__RETRY_INTERVAL", "30s")
	t.Setenv("GRADEBOOK_SYNC__ENABLED", "true")
	t.Setenv("GRADEBOOK_PARSER__DEFAULT_YEAR", "2027")
	t.Setenv("GRADEBOOK_WATCH__EXTENSIONS", "md, txt,,docx")
	t.Setenv("GRADEBOOK_", "ignored")

	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("sync.enabled", false))

	assert.Equal(t, "30s", store.GetString("sync.retry_interval"))
	assert.True(t, store.GetBool("sync.enabled"), "environment wins over the file")
	assert.Equal(t, 2027, store.GetInt("parser.default_year"))
	assert.Equal(t, []string{"md", "txt", "docx"}, store.GetStringSlice("watch.extensions"))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "retry_interval", "overrides are not persisted")
}

func TestReadEnv(t *testing.T) {
	got := readEnv([]string{
		"HOME=/home/me",
		"GRADEBOOK_CLOUD__TOKEN_FILE=/tmp/token.json",
		"GRADEBOOK_LOGGING__VERBOSE=1",
		"GRADEBOOKX=nope",
		"GRADEBOOK_BROKEN",
	})

	assert.Equal(t, map[string]string{
		"cloud.token_file": "/tmp/token.json",
		"logging.verbose":  "1",
	}, got)
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"c.d":   "x",
		"c.e.f": true,
	})

	assert.Equal(t, map[string]any{
		"a":   1,
		"a.b": 2,
		"c": map[string]any{
			"d": "x",
			"e": map[string]any{"f": true},
		},
	}, got)
	assert.Equal(t, map[string]any{"a": 1, "a.b": 2, "c.d": "x", "c.e.f": true}, flattenMap(got, ""))
}
