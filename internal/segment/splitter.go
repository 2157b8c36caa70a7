package segment

import "strings"

// DefaultSeparators is the split preference ladder: paragraph break, line
// break, sentence terminator, space, and finally a hard character split.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into overlapping chunks. Sizes and the overlap are
// measured in runes. Every chunk after the first starts with exactly
// min(overlap, len(previous)) runes copied from the end of the previous
// chunk, so stripping that prefix and concatenating reconstructs the input.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewSplitter creates a splitter with the default separator ladder.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}

// Split returns the chunks for text, in order. Empty input yields nil.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.assemble(s.atomize(text, s.separators))
}

// atomize recursively splits text into pieces no longer than chunkSize,
// preferring the earliest separator in the ladder that occurs in the text.
// Separators stay attached to the piece they terminate.
func (s *Splitter) atomize(text string, seps []string) []string {
	if len([]rune(text)) <= s.chunkSize {
		return []string{text}
	}

	// Pick the first separator that actually occurs.
	sep := ""
	rest := seps
	for i, cand := range seps {
		if cand == "" {
			sep, rest = "", nil
			break
		}
		if strings.Contains(text, cand) {
			sep, rest = cand, seps[i+1:]
			break
		}
	}

	if sep == "" {
		return hardSplit(text, s.chunkSize)
	}

	var pieces []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if len([]rune(part)) > s.chunkSize {
			pieces = append(pieces, s.atomize(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// assemble greedily packs pieces into chunks of at most chunkSize runes,
// carrying the overlap suffix of each finished chunk into the next.
func (s *Splitter) assemble(pieces []string) []string {
	var chunks []string
	var cur []rune
	for _, p := range pieces {
		pr := []rune(p)
		if len(cur) > 0 && len(cur)+len(pr) > s.chunkSize {
			chunks = append(chunks, string(cur))
			ov := s.overlap
			if ov > len(cur) {
				ov = len(cur)
			}
			cur = append([]rune(nil), cur[len(cur)-ov:]...)
		}
		cur = append(cur, pr...)
	}
	if len(cur) > 0 {
		chunks = append(chunks, string(cur))
	}
	return chunks
}

func hardSplit(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
