// Package mock provides function-field mock implementations of coursechat
// interfaces for testing.
package mock

import (
	"context"

	"github.com/hransun/coursechat"
)

var _ coursechat.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of coursechat.VectorStore.
type VectorStore struct {
	AddCourseFn         func(ctx context.Context, course *coursechat.Course, chunks []coursechat.CourseChunk) (bool, error)
	ResolveCourseNameFn func(ctx context.Context, name string) (string, error)
	SearchChunksFn      func(ctx context.Context, query string, filter coursechat.SearchFilter, limit int) ([]coursechat.SearchResult, error)
	FindCourseByTitleFn func(ctx context.Context, title string) (*coursechat.Course, error)
	CourseCountFn       func(ctx context.Context) (int, error)
	CourseTitlesFn      func(ctx context.Context) ([]string, error)
}

func (s *VectorStore) AddCourse(ctx context.Context, course *coursechat.Course, chunks []coursechat.CourseChunk) (bool, error) {
	return s.AddCourseFn(ctx, course, chunks)
}

func (s *VectorStore) ResolveCourseName(ctx context.Context, name string) (string, error) {
	return s.ResolveCourseNameFn(ctx, name)
}

func (s *VectorStore) SearchChunks(ctx context.Context, query string, filter coursechat.SearchFilter, limit int) ([]coursechat.SearchResult, error) {
	return s.SearchChunksFn(ctx, query, filter, limit)
}

func (s *VectorStore) FindCourseByTitle(ctx context.Context, title string) (*coursechat.Course, error) {
	return s.FindCourseByTitleFn(ctx, title)
}

func (s *VectorStore) CourseCount(ctx context.Context) (int, error) {
	return s.CourseCountFn(ctx)
}

func (s *VectorStore) CourseTitles(ctx context.Context) ([]string, error) {
	return s.CourseTitlesFn(ctx)
}
