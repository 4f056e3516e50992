// Command kognita is the wiki knowledge base CLI. It wires the driven
// adapters (Confluence, Pinecone, OpenAI) into the core services and
// hands them to the cobra command tree.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kognita-labs/kognita-cli/internal/adapters/driven/config/file"
	"github.com/kognita-labs/kognita-cli/internal/adapters/driven/embedding/openai"
	"github.com/kognita-labs/kognita-cli/internal/adapters/driven/vector/pinecone"
	"github.com/kognita-labs/kognita-cli/internal/adapters/driven/wiki/confluence"
	"github.com/kognita-labs/kognita-cli/internal/adapters/driving/cli"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
	"github.com/kognita-labs/kognita-cli/internal/core/services"
	"github.com/kognita-labs/kognita-cli/internal/logger"
	"github.com/kognita-labs/kognita-cli/internal/segment"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

func main() {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	var store driven.ConfigStore
	if s, err := file.NewConfigStore(""); err == nil {
		store = s
	} else {
		fmt.Fprintf(os.Stderr, "warning: config store unavailable: %v\n", err)
	}

	settings := file.LoadSettings(store)

	wiki := buildWiki(settings)
	index := buildIndex(settings)
	embedder := buildEmbedder(settings)
	segmenter := buildSegmenter(settings)

	ingest := services.NewIngestService(wiki, index, embedder, segmenter)
	retrieval := services.NewRetrievalService(wiki, index, embedder, ingest)

	cli.Initialise(retrieval, ingest, retrieval)
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildWiki constructs the Confluence client, or nil when the wiki is not
// configured. Commands that need it report a clear error.
func buildWiki(s file.Settings) driven.WikiSource {
	if err := s.Validate("wiki"); err != nil {
		logger.Debug("wiki source disabled: %v", err)
		return nil
	}

	client, err := confluence.New(confluence.Config{
		BaseURL:  s.ConfluenceURL,
		Email:    s.ConfluenceEmail,
		APIToken: s.ConfluenceAPIToken,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: wiki source disabled: %v\n", err)
		return nil
	}
	return client
}

// buildIndex constructs the Pinecone index client, or nil when not
// configured.
func buildIndex(s file.Settings) driven.VectorIndex {
	if err := s.Validate("vector"); err != nil {
		logger.Debug("vector index disabled: %v", err)
		return nil
	}

	index, err := pinecone.New(pinecone.Config{
		APIKey:    s.PineconeAPIKey,
		Host:      s.PineconeHost,
		Namespace: s.PineconeNamespace,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: vector index disabled: %v\n", err)
		return nil
	}
	return index
}

// buildEmbedder constructs the OpenAI embedding client, or nil when not
// configured.
func buildEmbedder(s file.Settings) driven.EmbeddingService {
	if err := s.Validate("embedding"); err != nil {
		logger.Debug("embedding service disabled: %v", err)
		return nil
	}

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey: s.OpenAIAPIKey,
		Model:  s.OpenAIModel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: embedding service disabled: %v\n", err)
		return nil
	}
	return embedder
}

// buildSegmenter applies any chunking overrides from the config file.
func buildSegmenter(s file.Settings) *segment.Segmenter {
	var opts []segment.Option
	if s.ChunkSize > 0 {
		opts = append(opts, segment.WithChunkSize(s.ChunkSize))
	}
	if s.Overlap > 0 {
		opts = append(opts, segment.WithOverlap(s.Overlap))
	}
	return segment.New(opts...)
}
