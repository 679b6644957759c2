package coursechat

import "context"

// CourseChunk is the atomic retrieval unit: a bounded span of course text,
// overlapping its neighbors, prefixed with its provenance so every embedded
// unit remains meaningful when surfaced in isolation.
type CourseChunk struct {
	// Content is the context-prefixed chunk text handed to the index.
	Content string `json:"content"`

	// CourseTitle back-references the owning course.
	CourseTitle string `json:"courseTitle"`

	// LessonNumber is nil when the chunk spans lesson-less preamble.
	LessonNumber *int `json:"lessonNumber,omitempty"`

	// ChunkIndex is 0-based and unique within the course. It breaks
	// distance ties in search ordering.
	ChunkIndex int `json:"chunkIndex"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *CourseChunk) Validate() error {
	if c.CourseTitle == "" {
		return Errorf(EINVALID, "chunk course title required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if c.ChunkIndex < 0 {
		return Errorf(EINVALID, "chunk index must be non-negative, got %d", c.ChunkIndex)
	}
	return nil
}

// SearchFilter restricts a content search. Both fields are optional; a
// course title is resolved against the catalog before filtering.
type SearchFilter struct {
	CourseTitle  *string `json:"courseTitle,omitempty"`
	LessonNumber *int    `json:"lessonNumber,omitempty"`
}

// SearchResult is a matching chunk with its distance from the query.
// Lower distance means more semantically similar.
type SearchResult struct {
	Chunk    CourseChunk `json:"chunk"`
	Distance float64     `json:"distance"`
}

// VectorStore indexes courses for name resolution and chunks for semantic
// retrieval. The two collections are always updated together.
type VectorStore interface {
	// AddCourse indexes a course and its chunks. Re-adding an existing
	// title is a no-op for both collections; the returned bool reports
	// whether the course was actually added.
	AddCourse(ctx context.Context, course *Course, chunks []CourseChunk) (bool, error)

	// ResolveCourseName maps a partial or approximate course name to the
	// canonical title of the nearest catalog entry. Returns ENOTFOUND
	// only when the catalog is empty.
	ResolveCourseName(ctx context.Context, name string) (string, error)

	// SearchChunks runs nearest-neighbor search over the content
	// collection. A course title in the filter is resolved first; a
	// lesson number is matched exactly. Results are ordered by ascending
	// distance, ties broken by ascending chunk index. A filter matching
	// zero chunks yields an empty slice, not an error.
	SearchChunks(ctx context.Context, query string, filter SearchFilter, limit int) ([]SearchResult, error)

	// FindCourseByTitle retrieves a course and its lessons by exact
	// canonical title. Returns ENOTFOUND if the course does not exist.
	FindCourseByTitle(ctx context.Context, title string) (*Course, error)

	// CourseCount returns the number of courses in the catalog.
	CourseCount(ctx context.Context) (int, error)

	// CourseTitles returns all canonical course titles, sorted.
	CourseTitles(ctx context.Context) ([]string, error)
}

// Embedder converts texts into vector representations sharing one embedding
// space. Implementations hide batching and rate limiting.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
