// Package services contains the core business logic orchestrating the
// wiki source, segmenter, embedding service and vector index.
package services
