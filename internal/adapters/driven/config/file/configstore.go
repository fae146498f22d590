package file

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvPrefix marks environment variables that override config keys.
// GRADEBOOK_SYNC__RETRY_INTERVAL overrides "sync.retry_interval": a
// double underscore separates sections and names are lowercased.
const EnvPrefix = "GRADEBOOK_"

// fileName is the settings file inside the config directory.
const fileName = "config.toml"

// ConfigStore keeps settings in a TOML file, with dotted keys written as
// tables. Environment overrides are read on Load and never written back.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	env      map[string]string
}

// NewConfigStore opens config.toml in configDir, creating the directory
// if needed. An empty configDir means DefaultDir.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, fileName)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultDir returns ~/.gradebook.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gradebook"), nil
}

// Get returns the environment override for key if there is one, else
// the file value.
func (s *ConfigStore) Get(key string) (any, bool) {
	if raw, ok := s.envValue(key); ok {
		return raw, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt parses an override with Atoi. TOML integers decode as int64.
func (s *ConfigStore) GetInt(key string) int {
	if raw, ok := s.envValue(key); ok {
		n, _ := strconv.Atoi(raw)
		return n
	}
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetBool parses an override with ParseBool.
func (s *ConfigStore) GetBool(key string) bool {
	if raw, ok := s.envValue(key); ok {
		b, _ := strconv.ParseBool(raw)
		return b
	}
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice splits an override on commas, dropping blanks. TOML
// arrays decode as []any, whose non-string items are skipped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	if raw, ok := s.envValue(key); ok {
		return lo.Compact(lo.Map(strings.Split(raw, ","), func(part string, _ int) string {
			return strings.TrimSpace(part)
		}))
	}
	val, _ := s.Get(key)
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		return lo.FilterMap(v, func(item any, _ int) (string, bool) {
			str, ok := item.(string)
			return str, ok
		})
	}
	return nil
}

// Set stores value and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.save()
}

// Delete removes key and rewrites the file. Unknown keys are ignored.
func (s *ConfigStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Keys lists every key set in the file or the environment, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := lo.Uniq(append(lo.Keys(s.data), lo.Keys(s.env)...))
	sort.Strings(keys)
	return keys
}

func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the file. The caller holds the lock.
func (s *ConfigStore) save() error {
	out, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.filePath, err)
	}
	return os.WriteFile(s.filePath, out, 0600)
}

// Load rereads the environment and the file. A missing file is an empty
// config.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.env = readEnv(os.Environ())
	s.data = make(map[string]any)

	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.data = flattenMap(tree, "")
	return nil
}

func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) envValue(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.env[key]
	return val, ok
}

// readEnv collects GRADEBOOK_ variables as config keys.
func readEnv(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(name, EnvPrefix)
		if key == "" {
			continue
		}
		key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
		out[key] = value
	}
	return out
}

// flattenMap turns {"a": {"b": 1}} into {"a.b": 1}.
func flattenMap(tree map[string]any, prefix string) map[string]any {
	flat := make(map[string]any, len(tree))
	for name, value := range tree {
		if prefix != "" {
			name = prefix + "." + name
		}
		if table, ok := value.(map[string]any); ok {
			maps.Copy(flat, flattenMap(table, name))
			continue
		}
		flat[name] = value
	}
	return flat
}

// nestMap is the inverse of flattenMap. A key whose prefix is already
// a plain value stays flat so nothing is lost.
func nestMap(flat map[string]any) map[string]any {
	keys := lo.Keys(flat)
	// Shorter keys first so plain values claim their names before tables do.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		placed := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				placed = false
				break
			}
			node = next
		}
		if !placed {
			root[key] = flat[key]
			continue
		}
		leaf := parts[len(parts)-1]
		if _, clash := node[leaf].(map[string]any); clash {
			root[key] = flat[key]
			continue
		}
		node[leaf] = flat[key]
	}
	return root
}
