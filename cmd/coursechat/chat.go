package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/hransun/coursechat"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Ask about the course materials. Type \"exit\" to quit.")

	var sessionID string
	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := deps.System.Answer(deps.Ctx, query, sessionID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", coursechat.ErrorMessage(err))
			continue
		}
		sessionID = answer.SessionID

		fmt.Fprintln(deps.Stdout, answer.Text)
		printSources(deps, answer)
		fmt.Fprintln(deps.Stdout)
	}

	return scanner.Err()
}
