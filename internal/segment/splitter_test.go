package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100, 20)
	chunks := s.Split("short text")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplit_EmptyTextNil(t *testing.T) {
	s := NewSplitter(100, 20)
	assert.Nil(t, s.Split(""))
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("word word word. ", 30)
	for _, c := range s.Split(text) {
		assert.LessOrEqual(t, len([]rune(c)), 50)
	}
}

func TestSplit_PreferredSeparator(t *testing.T) {
	s := NewSplitter(30, 0)
	text := "first paragraph here\n\nsecond paragraph here"
	chunks := s.Split(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph here\n\n", chunks[0])
	assert.Equal(t, "second paragraph here", chunks[1])
}

func TestSplit_OverlapReconstruction(t *testing.T) {
	overlap := 10
	s := NewSplitter(40, overlap)
	text := strings.Repeat("the quick brown fox jumps over dogs. ", 20)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with exactly the overlap suffix of
	// its predecessor; stripping it and concatenating restores the input.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		ov := overlap
		if ov > len(prev) {
			ov = len(prev)
		}
		prefix := string(prev[len(prev)-ov:])
		require.True(t, strings.HasPrefix(chunks[i], prefix),
			"chunk %d does not carry its predecessor's suffix", i)
		rebuilt.WriteString(chunks[i][len(prefix):])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSplit_NoSeparatorsHardSplit(t *testing.T) {
	s := NewSplitter(10, 0)
	text := strings.Repeat("a", 25)
	chunks := s.Split(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("a", 10), chunks[0])
	assert.Equal(t, strings.Repeat("a", 10), chunks[1])
	assert.Equal(t, strings.Repeat("a", 5), chunks[2])
}

func TestSplit_RuneSafety(t *testing.T) {
	s := NewSplitter(10, 2)
	text := strings.Repeat("héllo wörld ", 10)
	for _, c := range s.Split(text) {
		// Chunks must stay valid UTF-8 with no split multibyte runes.
		assert.True(t, strings.ToValidUTF8(c, "?") == c)
		assert.LessOrEqual(t, len([]rune(c)), 10)
	}
}

func TestNewSplitter_ClampsBadGeometry(t *testing.T) {
	// Overlap >= chunk size would never terminate; it is clamped to zero.
	s := NewSplitter(10, 10)
	text := strings.Repeat("ab ", 20)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	total := 0
	for _, c := range chunks {
		total += len([]rune(c))
	}
	assert.Equal(t, len([]rune(text)), total)
}
