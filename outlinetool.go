package coursechat

import (
	"context"
	"fmt"
	"strings"
)

// Ensure CourseOutlineTool implements Tool at compile time.
var _ Tool = (*CourseOutlineTool)(nil)

// CourseOutlineTool exposes course structure to the model: the canonical
// title, the course link, and the full numbered lesson list.
type CourseOutlineTool struct {
	store   VectorStore
	sources []Source
}

// NewCourseOutlineTool creates a CourseOutlineTool.
func NewCourseOutlineTool(store VectorStore) *CourseOutlineTool {
	return &CourseOutlineTool{store: store}
}

// Definition returns the get_course_outline schema.
func (t *CourseOutlineTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get the outline of a course: its title, link, and the complete list of lessons with numbers and titles",
		Params: []ToolParam{
			{Name: "course_name", Type: "string", Description: "Course title (partial matches work, e.g. 'MCP')", Required: true},
		},
	}
}

// Execute resolves the requested course name and formats its outline. An
// unresolvable name yields a descriptive observation, not an error.
func (t *CourseOutlineTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	name, ok := stringArg(args, "course_name")
	if !ok {
		return "", Errorf(EINVALID, "get_course_outline requires a course_name argument")
	}

	title, err := t.store.ResolveCourseName(ctx, name)
	if err != nil {
		if ErrorCode(err) == ENOTFOUND {
			return fmt.Sprintf("No course found matching '%s'", name), nil
		}
		return "", err
	}

	course, err := t.store.FindCourseByTitle(ctx, title)
	if err != nil {
		if ErrorCode(err) == ENOTFOUND {
			return fmt.Sprintf("No course found matching '%s'", name), nil
		}
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Course: %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&sb, "Course Link: %s\n", course.Link)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&sb, "Instructor: %s\n", course.Instructor)
	}
	fmt.Fprintf(&sb, "Lessons (%d):\n", len(course.Lessons))
	for _, lesson := range course.Lessons {
		fmt.Fprintf(&sb, "  %d. %s\n", lesson.Number, lesson.Title)
	}

	t.sources = append(t.sources, Source{Text: course.Title, Link: course.Link})

	return sb.String(), nil
}

// Sources returns labels accumulated by the most recent executions.
func (t *CourseOutlineTool) Sources() []Source {
	return t.sources
}

// ResetSources clears accumulated labels.
func (t *CourseOutlineTool) ResetSources() {
	t.sources = nil
}
