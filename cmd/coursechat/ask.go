package main

import (
	"fmt"

	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/rag"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.System.Answer(deps.Ctx, c.Question, "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", coursechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	printSources(deps, answer)
	return nil
}

func printSources(deps *Dependencies, answer *rag.Answer) {
	if len(answer.Sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Sources:")
	for _, src := range answer.Sources {
		if src.Link != "" {
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", src.Text, src.Link)
		} else {
			fmt.Fprintf(deps.Stdout, "  %s\n", src.Text)
		}
	}
}
