package main

import (
	"fmt"

	"github.com/hransun/coursechat"
)

// Run executes the courses command.
func (c *CoursesCmd) Run(deps *Dependencies) error {
	count, err := deps.Store.CourseCount(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursechat.ErrorMessage(err))
		return err
	}

	if count == 0 {
		fmt.Fprintln(deps.Stdout, "No courses indexed. Use 'coursechat ingest' to add some.")
		return nil
	}

	titles, err := deps.Store.CourseTitles(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d courses indexed:\n", count)
	for _, title := range titles {
		fmt.Fprintf(deps.Stdout, "  %s\n", title)
	}

	return nil
}
