package chunker

// Default splitting parameters of the retrieval corpus.
const (
	DefaultWindow  = 800
	DefaultOverlap = 100
)

// Splitter splits text into overlapping fixed-size windows. When a
// window would end mid-word, the cut is moved back to the nearest
// paragraph, line or word boundary within the overlap zone.
type Splitter struct {
	window  int
	overlap int
}

// NewSplitter returns new Splitter. Non-positive or inconsistent
// parameters fall back to the defaults.
func NewSplitter(window, overlap int) Splitter {
	if window <= 0 {
		window = DefaultWindow
	}
	if overlap < 0 || overlap >= window {
		overlap = DefaultOverlap
		if overlap >= window {
			window = DefaultWindow
		}
	}
	return Splitter{window: window, overlap: overlap}
}

// Split splits text into chunks of at most the window size, consecutive
// chunks sharing the overlap. Empty input yields no chunks.
func (s Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.window {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + s.window
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := s.boundaryCut(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - s.overlap
	}

	return chunks
}

// boundaryCut moves the window end back to the best boundary inside the
// overlap zone: paragraph break first, then line break, then word break.
// Falls back to the hard window end when the zone has no boundary. The
// cut always stays past start+overlap so the splitter makes progress.
func (s Splitter) boundaryCut(runes []rune, start, end int) int {
	floor := max(end-s.overlap, start+s.overlap+1)

	paragraph, line, word := -1, -1, -1
	for i := end; i > floor; i-- {
		switch runes[i-1] {
		case '\n':
			if i >= 2 && runes[i-2] == '\n' && paragraph < 0 {
				paragraph = i
			}
			if line < 0 {
				line = i
			}
		case ' ', '\t':
			if word < 0 {
				word = i
			}
		}
	}

	for _, cut := range []int{paragraph, line, word} {
		if cut > 0 {
			return cut
		}
	}

	return end
}
