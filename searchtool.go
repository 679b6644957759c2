package coursechat

import (
	"context"
	"fmt"
	"strings"
)

// Ensure CourseSearchTool implements Tool at compile time.
var _ Tool = (*CourseSearchTool)(nil)

// CourseSearchTool exposes semantic search over course content to the
// model. Results are formatted with provenance headers and the tool
// accumulates citation labels for the orchestrator to surface.
type CourseSearchTool struct {
	store      VectorStore
	maxResults int
	sources    []Source
}

// NewCourseSearchTool creates a CourseSearchTool. A non-positive maxResults
// falls back to DefaultMaxResults.
func NewCourseSearchTool(store VectorStore, maxResults int) *CourseSearchTool {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &CourseSearchTool{store: store, maxResults: maxResults}
}

// Definition returns the search_course_content schema.
func (t *CourseSearchTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and optional lesson filtering",
		Params: []ToolParam{
			{Name: "query", Type: "string", Description: "What to search for in course content", Required: true},
			{Name: "course_name", Type: "string", Description: "Course title (partial matches work, e.g. 'MCP')"},
			{Name: "lesson_number", Type: "integer", Description: "Specific lesson number to search within"},
		},
	}
}

// Execute runs a content search with the model-supplied filters. A filter
// that matches no course or no chunks yields a descriptive observation so
// the model can rephrase; only store failures surface as errors.
func (t *CourseSearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, ok := stringArg(args, "query")
	if !ok {
		return "", Errorf(EINVALID, "search_course_content requires a query argument")
	}

	var filter SearchFilter
	if name, ok := stringArg(args, "course_name"); ok {
		filter.CourseTitle = &name
	}
	if number, ok := intArg(args, "lesson_number"); ok {
		filter.LessonNumber = &number
	}

	results, err := t.store.SearchChunks(ctx, query, filter, t.maxResults)
	if err != nil {
		if ErrorCode(err) == ENOTFOUND && filter.CourseTitle != nil {
			return fmt.Sprintf("No course found matching '%s'", *filter.CourseTitle), nil
		}
		return "", err
	}

	if len(results) == 0 {
		return t.emptyMessage(filter), nil
	}

	return t.formatResults(ctx, results), nil
}

// Sources returns labels accumulated by the most recent executions.
func (t *CourseSearchTool) Sources() []Source {
	return t.sources
}

// ResetSources clears accumulated labels.
func (t *CourseSearchTool) ResetSources() {
	t.sources = nil
}

// formatResults renders chunks as "[Course - Lesson N]" headed blocks
// joined by blank lines and records a citation label per chunk.
func (t *CourseSearchTool) formatResults(ctx context.Context, results []SearchResult) string {
	// Lesson links come from the catalog; fetch each course once.
	courses := make(map[string]*Course)

	blocks := make([]string, 0, len(results))
	for _, result := range results {
		chunk := result.Chunk

		header := "[" + chunk.CourseTitle
		label := chunk.CourseTitle
		if chunk.LessonNumber != nil {
			header += fmt.Sprintf(" - Lesson %d", *chunk.LessonNumber)
			label += fmt.Sprintf(" - Lesson %d", *chunk.LessonNumber)
		}
		header += "]"
		blocks = append(blocks, header+"\n"+chunk.Content)

		source := Source{Text: label}
		if chunk.LessonNumber != nil {
			course, ok := courses[chunk.CourseTitle]
			if !ok {
				course, _ = t.store.FindCourseByTitle(ctx, chunk.CourseTitle)
				courses[chunk.CourseTitle] = course
			}
			if course != nil {
				if lesson := course.Lesson(*chunk.LessonNumber); lesson != nil {
					source.Link = lesson.Link
				}
			}
		}
		t.sources = append(t.sources, source)
	}

	return strings.Join(blocks, "\n\n")
}

func (t *CourseSearchTool) emptyMessage(filter SearchFilter) string {
	msg := "No relevant content found"
	if filter.CourseTitle != nil {
		msg += fmt.Sprintf(" in course '%s'", *filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		msg += fmt.Sprintf(" in lesson %d", *filter.LessonNumber)
	}
	return msg + "."
}

// stringArg extracts a non-empty string argument.
func stringArg(args map[string]any, key string) (string, bool) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// intArg extracts an integer argument. JSON decoding yields float64 for
// numbers, so both representations are accepted.
func intArg(args map[string]any, key string) (int, bool) {
	switch value := args[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}
