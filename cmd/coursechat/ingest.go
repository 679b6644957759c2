package main

import (
	"fmt"

	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/rag"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	progress := func(event rag.ProgressEvent) {
		switch event.Type {
		case rag.ProgressAdded:
			fmt.Fprintf(deps.Stdout, "  added %q\n", event.Title)
		case rag.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %q: already indexed\n", event.Title)
		case rag.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Path, coursechat.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Ingestor.IngestDirectory(deps.Ctx, c.Dir, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d courses, %d chunks (%s, %s)\n",
		result.Courses, result.Chunks, rag.FormatBytes(result.Bytes), rag.FormatTokens(result.Tokens))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  %d already indexed\n", result.Skipped)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d failed\n", result.Failed)
	}

	return nil
}
