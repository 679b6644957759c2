package coursechat

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CourseSection is one body of text inside a parsed document. The preamble
// before the first lesson marker has a nil lesson number.
type CourseSection struct {
	LessonNumber *int
	Body         string
}

// ParsedCourse is the result of parsing one course document: the course
// entity plus its section bodies, ordered preamble first, then by lesson
// number.
type ParsedCourse struct {
	Course   *Course
	Sections []CourseSection
}

var lessonMarkerRe = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// ParseCourseDocument parses raw structured text into a course with its
// lessons and section bodies. The document starts with up to three header
// lines (Course Title:, Course Link:, Course Instructor:) of which only the
// title is mandatory; lesson boundaries are marked by "Lesson <n>: <title>"
// lines, each optionally followed by a "Lesson Link:" line. Lesson markers
// may appear out of order; the result is sorted by lesson number.
//
// Returns EINVALID when the title header is missing or a lesson number is
// duplicated. The transform is pure: no side effects.
func ParseCourseDocument(text string) (*ParsedCourse, error) {
	lines := strings.Split(text, "\n")

	course := &Course{}
	i := 0

	// Header lines: title is mandatory, link and instructor optional.
	// They may appear in any order within the leading header block; the
	// first non-header line ends the block.
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}
		if strings.HasPrefix(line, "Course Title:") {
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, "Course Title:"))
		} else if strings.HasPrefix(line, "Course Link:") {
			course.Link = strings.TrimSpace(strings.TrimPrefix(line, "Course Link:"))
		} else if strings.HasPrefix(line, "Course Instructor:") {
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, "Course Instructor:"))
		} else {
			break
		}
		i++
	}

	if course.Title == "" {
		return nil, Errorf(EINVALID, "document is missing the mandatory Course Title: header")
	}

	type section struct {
		lesson *Lesson
		body   []string
	}

	preamble := &section{}
	current := preamble
	var sections []*section

	for ; i < len(lines); i++ {
		line := lines[i]

		if m := lessonMarkerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			number, err := strconv.Atoi(m[1])
			if err != nil {
				// Unreachable given the \d+ pattern, but guard anyway.
				return nil, Errorf(EINVALID, "invalid lesson number %q", m[1])
			}
			current = &section{lesson: &Lesson{Number: number, Title: strings.TrimSpace(m[2])}}
			sections = append(sections, current)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if current.lesson != nil && current.lesson.Link == "" && len(current.body) == 0 &&
			strings.HasPrefix(trimmed, "Lesson Link:") {
			current.lesson.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, "Lesson Link:"))
			continue
		}

		current.body = append(current.body, line)
	}

	// Out-of-order markers are accepted; sort by number for the result.
	sort.SliceStable(sections, func(a, b int) bool {
		return sections[a].lesson.Number < sections[b].lesson.Number
	})

	parsed := &ParsedCourse{Course: course}

	if body := strings.TrimSpace(strings.Join(preamble.body, "\n")); body != "" {
		parsed.Sections = append(parsed.Sections, CourseSection{Body: body})
	}

	for _, s := range sections {
		course.Lessons = append(course.Lessons, *s.lesson)
		number := s.lesson.Number
		parsed.Sections = append(parsed.Sections, CourseSection{
			LessonNumber: &number,
			Body:         strings.TrimSpace(strings.Join(s.body, "\n")),
		})
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	return parsed, nil
}
