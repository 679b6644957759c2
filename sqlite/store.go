package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/bloom"
)

// Compile-time interface verification.
var _ coursechat.VectorStore = (*Store)(nil)

// Store implements coursechat.VectorStore on SQLite. Embeddings are stored
// as float32 blobs and searched with brute-force cosine distance, which is
// plenty for a corpus of course transcripts. The embedding engine is an
// injected dependency.
type Store struct {
	db       *DB
	embedder coursechat.Embedder

	// seen is a fast negative duplicate-ingestion guard. A negative test
	// proves the title is new; a positive one falls back to the exact
	// catalog check, so false positives only cost one query.
	seen     *bloom.Filter
	seedOnce sync.Once
	seedErr  error

	// mu serializes the check-then-insert section of AddCourse.
	// Embedding happens outside the lock.
	mu sync.Mutex
}

// NewStore creates a Store backed by db, embedding with embedder.
func NewStore(db *DB, embedder coursechat.Embedder) *Store {
	return &Store{
		db:       db,
		embedder: embedder,
		seen:     bloom.NewFilter(10000, 0.01),
	}
}

// AddCourse indexes a course and its chunks. Both collections are updated
// in one transaction; re-adding an existing title is a no-op.
func (s *Store) AddCourse(ctx context.Context, course *coursechat.Course, chunks []coursechat.CourseChunk) (bool, error) {
	if err := course.Validate(); err != nil {
		return false, err
	}
	for i := range chunks {
		if err := chunks[i].Validate(); err != nil {
			return false, err
		}
		if chunks[i].CourseTitle != course.Title {
			return false, coursechat.Errorf(coursechat.EINVALID,
				"chunk %d belongs to course %q, not %q", i, chunks[i].CourseTitle, course.Title)
		}
	}

	if err := s.seedSeenFilter(ctx); err != nil {
		return false, err
	}

	if s.seen.Test(course.Title) {
		exists, err := s.courseExists(ctx, course.Title)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}
	}

	// Embed the catalog entry and all chunk contents in one batch.
	texts := make([]string, 0, len(chunks)+1)
	texts = append(texts, catalogText(course))
	var contentBuilder strings.Builder
	for _, chunk := range chunks {
		texts = append(texts, chunk.Content)
		contentBuilder.WriteString(chunk.Content)
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return false, err
	}
	if len(vectors) != len(texts) {
		return false, coursechat.Errorf(coursechat.EINTERNAL,
			"embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock: a concurrent ingest may have won the race.
	exists, err := s.courseExists(ctx, course.Title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO courses (title, link, instructor, embedding, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, course.Title, course.Link, course.Instructor, vectorToBlob(vectors[0]),
		hashContent(contentBuilder.String()), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, err
	}

	for _, lesson := range course.Lessons {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO lessons (course_title, number, title, link)
			VALUES (?, ?, ?, ?)
		`, course.Title, lesson.Number, lesson.Title, lesson.Link)
		if err != nil {
			return false, err
		}
	}

	for i, chunk := range chunks {
		var lessonNumber any
		if chunk.LessonNumber != nil {
			lessonNumber = *chunk.LessonNumber
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks (course_title, chunk_index, lesson_number, content, embedding)
			VALUES (?, ?, ?, ?, ?)
		`, chunk.CourseTitle, chunk.ChunkIndex, lessonNumber, chunk.Content, vectorToBlob(vectors[i+1]))
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	s.seen.Add(course.Title)
	return true, nil
}

// ResolveCourseName maps a partial or approximate name to the canonical
// title of the nearest catalog entry. The top-1 match is accepted
// unconditionally; ENOTFOUND is returned only for an empty catalog.
func (s *Store) ResolveCourseName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", coursechat.Errorf(coursechat.EINVALID, "course name required")
	}

	rows, err := s.db.QueryContext(ctx, "SELECT title, embedding FROM courses")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	type entry struct {
		title  string
		vector []float32
	}
	var entries []entry
	for rows.Next() {
		var title string
		var blob []byte
		if err := rows.Scan(&title, &blob); err != nil {
			return "", err
		}
		entries = append(entries, entry{title: title, vector: blobToVector(blob)})
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", coursechat.Errorf(coursechat.ENOTFOUND, "course catalog is empty")
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{name})
	if err != nil {
		return "", err
	}

	best := entries[0].title
	bestDistance := cosineDistance(vectors[0], entries[0].vector)
	for _, e := range entries[1:] {
		if d := cosineDistance(vectors[0], e.vector); d < bestDistance {
			best = e.title
			bestDistance = d
		}
	}

	return best, nil
}

// SearchChunks runs nearest-neighbor search over the content collection.
// A course title in the filter is resolved against the catalog first.
func (s *Store) SearchChunks(ctx context.Context, query string, filter coursechat.SearchFilter, limit int) ([]coursechat.SearchResult, error) {
	if query == "" {
		return nil, coursechat.Errorf(coursechat.EINVALID, "search query required")
	}
	if limit <= 0 {
		limit = coursechat.DefaultMaxResults
	}

	var sb strings.Builder
	var args []any
	sb.WriteString("SELECT course_title, chunk_index, lesson_number, content, embedding FROM chunks WHERE 1=1")

	if filter.CourseTitle != nil {
		canonical, err := s.ResolveCourseName(ctx, *filter.CourseTitle)
		if err != nil {
			return nil, err
		}
		sb.WriteString(" AND course_title = ?")
		args = append(args, canonical)
	}
	if filter.LessonNumber != nil {
		sb.WriteString(" AND lesson_number = ?")
		args = append(args, *filter.LessonNumber)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type candidate struct {
		chunk  coursechat.CourseChunk
		vector []float32
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		var lessonNumber sql.NullInt64
		var blob []byte
		if err := rows.Scan(&c.chunk.CourseTitle, &c.chunk.ChunkIndex, &lessonNumber, &c.chunk.Content, &blob); err != nil {
			return nil, err
		}
		if lessonNumber.Valid {
			n := int(lessonNumber.Int64)
			c.chunk.LessonNumber = &n
		}
		c.vector = blobToVector(blob)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// A filter matching zero chunks is a normal empty answer, not an error.
	if len(candidates) == 0 {
		return nil, nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	results := make([]coursechat.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, coursechat.SearchResult{
			Chunk:    c.chunk,
			Distance: cosineDistance(vectors[0], c.vector),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Distance != results[b].Distance {
			return results[a].Distance < results[b].Distance
		}
		return results[a].Chunk.ChunkIndex < results[b].Chunk.ChunkIndex
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindCourseByTitle retrieves a course and its lessons by canonical title.
func (s *Store) FindCourseByTitle(ctx context.Context, title string) (*coursechat.Course, error) {
	var course coursechat.Course
	err := s.db.QueryRowContext(ctx, `
		SELECT title, link, instructor FROM courses WHERE title = ?
	`, title).Scan(&course.Title, &course.Link, &course.Instructor)
	if err == sql.ErrNoRows {
		return nil, coursechat.Errorf(coursechat.ENOTFOUND, "course %q not found", title)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, title, link FROM lessons WHERE course_title = ? ORDER BY number ASC
	`, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lesson coursechat.Lesson
		if err := rows.Scan(&lesson.Number, &lesson.Title, &lesson.Link); err != nil {
			return nil, err
		}
		course.Lessons = append(course.Lessons, lesson)
	}
	return &course, rows.Err()
}

// CourseCount returns the number of courses in the catalog.
func (s *Store) CourseCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count)
	return count, err
}

// CourseTitles returns all canonical course titles, sorted.
func (s *Store) CourseTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title FROM courses ORDER BY title ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// courseExists checks the catalog for an exact title.
func (s *Store) courseExists(ctx context.Context, title string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM courses WHERE title = ?", title).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// seedSeenFilter loads existing catalog titles into the duplicate guard the
// first time the store writes.
func (s *Store) seedSeenFilter(ctx context.Context) error {
	s.seedOnce.Do(func() {
		titles, err := s.CourseTitles(ctx)
		if err != nil {
			s.seedErr = err
			return
		}
		for _, title := range titles {
			s.seen.Add(title)
		}
	})
	return s.seedErr
}

// catalogText is the text embedded for a catalog entry: the title,
// enriched with the instructor when present.
func catalogText(course *coursechat.Course) string {
	if course.Instructor == "" {
		return course.Title
	}
	return course.Title + " by " + course.Instructor
}
