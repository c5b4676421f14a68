package chunker_test

import (
	"strings"
	"testing"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/chunker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitSplitShortInput(t *testing.T) {
	tests := map[string]struct {
		text       string
		wantChunks []string
	}{
		"empty input": {
			text:       "",
			wantChunks: nil,
		},
		"input shorter than window": {
			text:       "short product description",
			wantChunks: []string{"short product description"},
		},
		"input exactly window size": {
			text:       strings.Repeat("a", chunker.DefaultWindow),
			wantChunks: []string{strings.Repeat("a", chunker.DefaultWindow)},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			splitter := chunker.NewSplitter(chunker.DefaultWindow, chunker.DefaultOverlap)

			chunks := splitter.Split(tt.text)

			assert.Equal(t, tt.wantChunks, chunks, "should return correct chunks")
		})
	}
}

func TestUnitSplitWindowBound(t *testing.T) {
	splitter := chunker.NewSplitter(chunker.DefaultWindow, chunker.DefaultOverlap)
	text := strings.Repeat("some product text with spaces ", 200)

	chunks := splitter.Split(text)

	require.Greater(t, len(chunks), 1, "long input should yield multiple chunks")
	for ix, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), chunker.DefaultWindow, "chunk %d should fit the window", ix)
		assert.Greater(t, len([]rune(chunk)), chunker.DefaultOverlap, "chunk %d should be longer than the overlap", ix)
	}
}

func TestUnitSplitOverlapReconstruction(t *testing.T) {
	tests := map[string]struct {
		window  int
		overlap int
		text    string
	}{
		"word boundaries": {
			window:  50,
			overlap: 10,
			text:    strings.Repeat("alpha beta gamma delta ", 40),
		},
		"line boundaries": {
			window:  60,
			overlap: 15,
			text:    strings.Repeat("first line of text\nsecond line of text\n", 30),
		},
		"paragraph boundaries": {
			window:  120,
			overlap: 30,
			text:    strings.Repeat("a paragraph about the product features and specifications\n\n", 20),
		},
		"no boundaries at all": {
			window:  40,
			overlap: 8,
			text:    strings.Repeat("x", 500),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			splitter := chunker.NewSplitter(tt.window, tt.overlap)

			chunks := splitter.Split(tt.text)

			require.NotEmpty(t, chunks, "should return chunks")

			// consecutive chunks share exactly the overlap, so dropping
			// each chunk's first overlap runes reassembles the input
			rebuilt := chunks[0]
			for ix := 1; ix < len(chunks); ix++ {
				prev := []rune(chunks[ix-1])
				curr := []rune(chunks[ix])

				require.Equal(t,
					string(prev[len(prev)-tt.overlap:]),
					string(curr[:tt.overlap]),
					"chunk %d should start with the tail of chunk %d", ix, ix-1,
				)

				rebuilt += string(curr[tt.overlap:])
			}

			assert.Equal(t, tt.text, rebuilt, "chunks should reassemble into the input")
		})
	}
}

func TestUnitSplitPrefersWordBoundary(t *testing.T) {
	splitter := chunker.NewSplitter(30, 10)
	text := strings.Repeat("aaaa bbbb cccc dddd ", 10)

	chunks := splitter.Split(text)

	require.Greater(t, len(chunks), 1, "should yield multiple chunks")
	for ix, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk, " "), "chunk %d should end on a word boundary", ix)
	}
}

func TestUnitNewSplitterFallbacks(t *testing.T) {
	tests := map[string]struct {
		window  int
		overlap int
	}{
		"zero window":              {window: 0, overlap: 100},
		"negative overlap":         {window: 800, overlap: -1},
		"overlap not below window": {window: 100, overlap: 100},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			splitter := chunker.NewSplitter(tt.window, tt.overlap)

			chunks := splitter.Split(strings.Repeat("word ", 500))

			require.NotEmpty(t, chunks, "should still split")
			for ix, chunk := range chunks {
				assert.LessOrEqual(t, len([]rune(chunk)), chunker.DefaultWindow, "chunk %d should fit the default window", ix)
			}
		})
	}
}
