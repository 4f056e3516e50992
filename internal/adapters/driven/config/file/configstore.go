package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists configuration as a TOML file. Nested tables are
// flattened to dot-notation keys on load, so "segment.chunk_size" reads the
// chunk_size entry of the [segment] table.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]any
}

// NewConfigStore opens (or initialises) the config file under configDir.
// An empty configDir defaults to ~/.kognita.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".kognita")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		values:   map[string]any{},
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a configuration value by dot-notation key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString retrieves a string value, or "" when absent or mistyped.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt retrieves an integer value, or 0 when absent or mistyped.
// TOML integers decode as int64.
func (s *ConfigStore) GetInt(key string) int {
	switch v, _ := s.Get(key); n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

// Set stores a value and writes the file immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return err
	}
	// Config may hold API hosts and namespaces, keep it owner-readable only.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the TOML file, replacing any in-memory values. A missing file
// yields an empty store.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.values = map[string]any{}
		return nil
	}
	if err != nil {
		return err
	}

	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	s.values = map[string]any{}
	flattenInto(s.values, "", parsed)
	return nil
}

// flattenInto accumulates nested TOML tables as dot-notation keys,
// e.g. {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenInto(dst map[string]any, prefix string, src map[string]any) {
	for key, value := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flattenInto(dst, full, table)
			continue
		}
		dst[full] = value
	}
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
