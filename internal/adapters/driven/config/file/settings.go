package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

// Settings holds the resolved connection settings for all backends.
// Values come from environment variables first, then the config file,
// so credentials can stay out of the file entirely.
type Settings struct {
	ConfluenceURL      string
	ConfluenceEmail    string
	ConfluenceAPIToken string

	PineconeAPIKey    string
	PineconeHost      string
	PineconeNamespace string

	OpenAIAPIKey string
	OpenAIModel  string

	ChunkSize int
	Overlap   int
	TopK      int
}

// settingKeys maps each setting to its environment variable and its
// config-file key.
var settingKeys = []struct {
	env string
	key string
	set func(*Settings, string)
}{
	{"CONFLUENCE_URL", "confluence.url", func(s *Settings, v string) { s.ConfluenceURL = v }},
	{"CONFLUENCE_EMAIL", "confluence.email", func(s *Settings, v string) { s.ConfluenceEmail = v }},
	{"CONFLUENCE_API_TOKEN", "confluence.api_token", func(s *Settings, v string) { s.ConfluenceAPIToken = v }},
	{"PINECONE_API_KEY", "pinecone.api_key", func(s *Settings, v string) { s.PineconeAPIKey = v }},
	{"PINECONE_HOST", "pinecone.host", func(s *Settings, v string) { s.PineconeHost = v }},
	{"PINECONE_NAMESPACE", "pinecone.namespace", func(s *Settings, v string) { s.PineconeNamespace = v }},
	{"OPENAI_API_KEY", "openai.api_key", func(s *Settings, v string) { s.OpenAIAPIKey = v }},
	{"OPENAI_MODEL", "openai.model", func(s *Settings, v string) { s.OpenAIModel = v }},
}

// LoadSettings resolves settings from the environment and the config
// store. Environment variables win; numeric tuning comes from the store
// only.
func LoadSettings(store driven.ConfigStore) Settings {
	var s Settings

	for _, sk := range settingKeys {
		if v := os.Getenv(sk.env); v != "" {
			sk.set(&s, v)
			continue
		}
		if store == nil {
			continue
		}
		if v := store.GetString(sk.key); v != "" {
			sk.set(&s, v)
		}
	}

	if store != nil {
		s.ChunkSize = store.GetInt("segment.chunk_size")
		s.Overlap = store.GetInt("segment.overlap")
		s.TopK = store.GetInt("search.top_k")
	}

	return s
}

// Validate reports the settings still missing for the requested
// backends. Each name is a role: "wiki", "vector", "embedding".
func (s Settings) Validate(backends ...string) error {
	var missing []string

	for _, backend := range backends {
		switch backend {
		case "wiki":
			if s.ConfluenceURL == "" {
				missing = append(missing, "CONFLUENCE_URL")
			}
			if s.ConfluenceEmail == "" {
				missing = append(missing, "CONFLUENCE_EMAIL")
			}
			if s.ConfluenceAPIToken == "" {
				missing = append(missing, "CONFLUENCE_API_TOKEN")
			}
		case "vector":
			if s.PineconeAPIKey == "" {
				missing = append(missing, "PINECONE_API_KEY")
			}
			if s.PineconeHost == "" {
				missing = append(missing, "PINECONE_HOST")
			}
		case "embedding":
			if s.OpenAIAPIKey == "" {
				missing = append(missing, "OPENAI_API_KEY")
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
