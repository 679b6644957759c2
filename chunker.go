package coursechat

import (
	"fmt"
	"strings"
)

// sentenceAbbreviations lists tokens whose trailing period is not a sentence
// terminator. Checked case-insensitively against the word ending at the
// candidate period.
var sentenceAbbreviations = map[string]bool{
	"al.":     true,
	"approx.": true,
	"cf.":     true,
	"dr.":     true,
	"e.g.":    true,
	"etc.":    true,
	"fig.":    true,
	"i.e.":    true,
	"jr.":     true,
	"mr.":     true,
	"mrs.":    true,
	"ms.":     true,
	"no.":     true,
	"prof.":   true,
	"sr.":     true,
	"st.":     true,
	"vs.":     true,
}

// SplitSentences splits text into sentences. Whitespace is normalized to
// single spaces first. A '.', '!' or '?' followed by a space ends a sentence
// unless the period terminates a known abbreviation.
func SplitSentences(text string) []string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(normalized); i++ {
		ch := normalized[i]
		if ch != '.' && ch != '!' && ch != '?' {
			continue
		}
		if i+1 < len(normalized) && normalized[i+1] != ' ' {
			continue
		}
		if ch == '.' && endsInAbbreviation(normalized[start:i+1]) {
			continue
		}
		sentences = append(sentences, normalized[start:i+1])
		start = i + 2
		i++
	}
	if start < len(normalized) {
		sentences = append(sentences, normalized[start:])
	}
	return sentences
}

// endsInAbbreviation reports whether the last word of s is a known
// abbreviation. Leading punctuation such as an opening parenthesis is
// stripped before the lookup.
func endsInAbbreviation(s string) bool {
	word := s
	if sp := strings.LastIndexByte(s, ' '); sp >= 0 {
		word = s[sp+1:]
	}
	word = strings.TrimLeft(strings.ToLower(word), "\"'([{")
	return sentenceAbbreviations[word]
}

// Chunker splits lesson bodies into overlapping chunks of bounded size.
// Sentences are never truncated: a single sentence longer than Size is
// emitted as its own oversized chunk.
type Chunker struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is the number of trailing characters of a chunk re-included
	// at the start of the next chunk, snapped forward to a word boundary.
	// The overlap counts against Size and is dropped when it would not fit.
	Overlap int
}

// NewChunker creates a Chunker, substituting defaults for non-positive values.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Chunk splits a section body into chunk bodies. Sentences are accumulated
// greedily until adding the next one would exceed Size; each subsequent
// chunk starts with the previous chunk's overlap tail. The tail counts
// against the budget: it is dropped when carrying it would push the new
// chunk past Size, so only a single oversized sentence can ever produce a
// chunk longer than Size.
func (c *Chunker) Chunk(body string) []string {
	sentences := SplitSentences(body)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	current := ""
	for _, sentence := range sentences {
		candidate := sentence
		if current != "" {
			candidate = current + " " + sentence
		}
		if current != "" && len(candidate) > c.Size {
			chunks = append(chunks, current)
			tail := overlapTail(current, c.Overlap)
			if tail == "" || len(tail)+1+len(sentence) > c.Size {
				current = sentence
			} else {
				current = tail + " " + sentence
			}
			continue
		}
		current = candidate
	}
	return append(chunks, current)
}

// ChunkCourse chunks every section of a parsed course and prefixes each
// chunk with its provenance header. Chunk indexes are 0-based and unique
// across the whole course.
func (c *Chunker) ChunkCourse(parsed *ParsedCourse) []CourseChunk {
	var chunks []CourseChunk
	index := 0
	for _, section := range parsed.Sections {
		for _, body := range c.Chunk(section.Body) {
			chunk := CourseChunk{
				Content:     ChunkHeader(parsed.Course.Title, section.LessonNumber) + body,
				CourseTitle: parsed.Course.Title,
				ChunkIndex:  index,
			}
			if section.LessonNumber != nil {
				number := *section.LessonNumber
				chunk.LessonNumber = &number
			}
			chunks = append(chunks, chunk)
			index++
		}
	}
	return chunks
}

// ChunkHeader returns the synthetic provenance prefix embedded with every
// chunk, e.g. "Course Intro Lesson 0 content: ".
func ChunkHeader(courseTitle string, lessonNumber *int) string {
	if lessonNumber == nil {
		return fmt.Sprintf("Course %s content: ", courseTitle)
	}
	return fmt.Sprintf("Course %s Lesson %d content: ", courseTitle, *lessonNumber)
}

// overlapTail returns the trailing overlap characters of a chunk, advanced
// past a partial leading word so the tail never starts mid-word.
func overlapTail(s string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	if len(s) <= overlap {
		return s
	}
	tail := s[len(s)-overlap:]
	if s[len(s)-overlap-1] == ' ' {
		return tail
	}
	if sp := strings.IndexByte(tail, ' '); sp >= 0 {
		return tail[sp+1:]
	}
	return ""
}
