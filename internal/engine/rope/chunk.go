package rope

import "unicode/utf8"

// Chunk size constants control the granularity of leaf storage.
const (
	// MinChunkSize is the minimum bytes per chunk, the last chunk excepted.
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when splitting text.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable piece of text stored in a leaf node.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk and computes its summary.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// Split splits the chunk at a byte offset.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks cuts s into chunks no larger than MaxChunkSize.
// Cuts prefer a position just after a newline near the target size and
// never fall inside a UTF-8 sequence.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	return append(chunks, NewChunk(s))
}

func chunkBoundary(s string, target int) int {
	window := MinChunkSize / 4
	for i := target; i < target+window && i < len(s); i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= target-window; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	if pos == 0 {
		// A run of continuation bytes; cut forward instead.
		pos = target
		for pos < len(s) && !utf8.RuneStart(s[pos]) {
			pos++
		}
	}
	return pos
}
