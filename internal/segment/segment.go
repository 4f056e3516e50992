// Package segment converts wiki storage markup into normalised plain text
// and splits it into bounded, overlapping chunks for embedding.
package segment

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 512

// DefaultOverlap is the default number of overlapping characters carried
// into the next chunk.
const DefaultOverlap = 50

// Pre-compiled regular expressions for normalisation and splitting.
var (
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	paragraphSep  = regexp.MustCompile(`\n{2,}`)
	sentenceEnd   = regexp.MustCompile(`([.!?])\s+`)
)

// entityReplacer decodes the small fixed set of entities the wiki storage
// format actually emits. Full HTML entity handling is not needed.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&ldquo;", `"`,
	"&rdquo;", `"`,
	"&lsquo;", "'",
	"&rsquo;", "'",
	"&#39;", "'",
)

// Normalise converts storage-format markup into plain text: entities are
// decoded, every angle-bracket span is removed, whitespace runs collapse
// and blank lines are trimmed. Absent markup yields an empty string, not
// an error. Normalise must run exactly once per document: output may
// still carry decoded entities and angle brackets that a second pass
// would decode further or strip.
func Normalise(markup string) string {
	if markup == "" {
		return ""
	}

	text := entityReplacer.Replace(markup)
	text = allTags.ReplaceAllString(text, "")

	// Canonicalise whitespace: paragraph breaks survive as exactly one
	// blank line, everything else collapses.
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = multiSpaces.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = multiNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// Segmenter splits normalised text into chunks.
type Segmenter struct {
	chunkSize int
	overlap   int
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Segmenter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a Segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for new content in every chunk.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured chunk size.
func (s *Segmenter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Segmenter) Overlap() int { return s.overlap }

// Split divides normalised text into chunks. Paragraphs are packed
// greedily while they fit within the chunk size; when a paragraph would
// overflow, the chunk is closed and the next one is seeded with the last
// overlap characters of the closed chunk. A paragraph that alone exceeds
// the chunk size is split on sentence boundaries instead, never inside a
// sentence, so a single oversized sentence becomes an oversized chunk.
//
// Splitting is deterministic for a given (text, chunkSize, overlap).
func (s *Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var current string

	for _, paragraph := range splitParagraphs(text) {
		if len(paragraph) > s.chunkSize {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			chunks = s.appendLongParagraph(chunks, paragraph)
			continue
		}

		if len(current)+len(paragraph)+2 > s.chunkSize {
			if current != "" {
				chunks = append(chunks, current)
			}
			current = s.seed(chunks, paragraph)
			continue
		}

		if current == "" {
			current = paragraph
		} else {
			current = current + "\n\n" + paragraph
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// seed starts a new chunk, carrying trailing context from the previous
// chunk when overlap is enabled.
func (s *Segmenter) seed(chunks []string, text string) string {
	if s.overlap <= 0 || len(chunks) == 0 {
		return text
	}

	prev := chunks[len(chunks)-1]
	if len(prev) > s.overlap {
		prev = prev[len(prev)-s.overlap:]
	}
	return prev + " " + text
}

// appendLongParagraph splits an oversized paragraph on sentence boundaries
// and packs the sentences greedily into sub-chunks. A sentence is never
// split, even when it alone exceeds the chunk size.
func (s *Segmenter) appendLongParagraph(chunks []string, paragraph string) []string {
	var sub []string

	for _, sentence := range splitSentences(paragraph) {
		if len(sub) == 0 {
			sub = append(sub, s.seed(chunks, sentence))
			continue
		}

		last := sub[len(sub)-1]
		if len(last)+len(sentence)+1 > s.chunkSize {
			sub = append(sub, s.seed(sub, sentence))
		} else {
			sub[len(sub)-1] = last + " " + sentence
		}
	}

	return append(chunks, sub...)
}

// splitParagraphs splits on blank-line boundaries, dropping empties.
func splitParagraphs(text string) []string {
	parts := paragraphSep.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitSentences splits after sentence terminators followed by whitespace.
func splitSentences(text string) []string {
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")

	sentences := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Preview truncates text for metadata and result display.
func Preview(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return strings.TrimSpace(text[:maxLen]) + "..."
}
