// Package slog provides logging decorators for coursechat services using
// the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hransun/coursechat"
)

// Ensure LoggingStore implements coursechat.VectorStore.
var _ coursechat.VectorStore = (*LoggingStore)(nil)

// LoggingStore wraps a VectorStore with duration logging for the operations
// that hit the embedding backend.
type LoggingStore struct {
	next   coursechat.VectorStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next coursechat.VectorStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// AddCourse delegates and logs the outcome with timing.
func (s *LoggingStore) AddCourse(ctx context.Context, course *coursechat.Course, chunks []coursechat.CourseChunk) (bool, error) {
	begin := time.Now()
	added, err := s.next.AddCourse(ctx, course, chunks)
	s.logger.Info("add course",
		"title", course.Title,
		"chunks", len(chunks),
		"added", added,
		"duration", time.Since(begin),
		"err", err,
	)
	return added, err
}

// ResolveCourseName delegates and logs the resolution with timing.
func (s *LoggingStore) ResolveCourseName(ctx context.Context, name string) (string, error) {
	begin := time.Now()
	title, err := s.next.ResolveCourseName(ctx, name)
	s.logger.Info("resolve course name",
		"name", name,
		"resolved", title,
		"duration", time.Since(begin),
		"err", err,
	)
	return title, err
}

// SearchChunks delegates and logs the result count with timing.
func (s *LoggingStore) SearchChunks(ctx context.Context, query string, filter coursechat.SearchFilter, limit int) ([]coursechat.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.SearchChunks(ctx, query, filter, limit)
	s.logger.Info("search chunks",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
		"err", err,
	)
	return results, err
}

// FindCourseByTitle delegates to the wrapped store.
func (s *LoggingStore) FindCourseByTitle(ctx context.Context, title string) (*coursechat.Course, error) {
	return s.next.FindCourseByTitle(ctx, title)
}

// CourseCount delegates to the wrapped store.
func (s *LoggingStore) CourseCount(ctx context.Context) (int, error) {
	return s.next.CourseCount(ctx)
}

// CourseTitles delegates to the wrapped store.
func (s *LoggingStore) CourseTitles(ctx context.Context) ([]string, error) {
	return s.next.CourseTitles(ctx)
}
