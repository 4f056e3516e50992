package driven

// ConfigStore provides access to persisted tuning values (chunk sizes,
// default top-k, backend endpoints) that environment variables may override.
type ConfigStore interface {
	// Get retrieves a configuration value by dot-notation key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when absent or mistyped.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
