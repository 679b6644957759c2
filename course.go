package coursechat

// Course represents one ingested course document. The title is globally
// unique and serves as the primary key for both the catalog entry and the
// course filter on content chunks. Courses are immutable after ingestion.
type Course struct {
	Title      string   `json:"title"`
	Link       string   `json:"link,omitempty"`
	Instructor string   `json:"instructor,omitempty"`
	Lessons    []Lesson `json:"lessons"`
}

// Lesson is a numbered section of a course. Numbers are unique within a
// course and define lesson order; they need not be contiguous.
type Lesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// Validate returns an error if the course contains invalid fields.
func (c *Course) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "course title required")
	}
	seen := make(map[int]bool, len(c.Lessons))
	for _, lesson := range c.Lessons {
		if lesson.Number < 0 {
			return Errorf(EINVALID, "lesson number must be non-negative, got %d", lesson.Number)
		}
		if seen[lesson.Number] {
			return Errorf(EINVALID, "duplicate lesson number %d", lesson.Number)
		}
		seen[lesson.Number] = true
	}
	return nil
}

// Lesson returns the lesson with the given number, or nil if absent.
func (c *Course) Lesson(number int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Number == number {
			return &c.Lessons[i]
		}
	}
	return nil
}
