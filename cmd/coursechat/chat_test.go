package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	main "github.com/hransun/coursechat/cmd/coursechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers until exit", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("what is mcp\nexit\n"),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			System: answeringSystem("MCP is a protocol.", nil),
		}

		err := (&main.ChatCmd{}).Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "MCP is a protocol.")
	})

	t.Run("skips blank lines and stops at EOF", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("\n   \n"),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			System: answeringSystem("never called", nil),
		}

		err := (&main.ChatCmd{}).Run(deps)
		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "never called")
	})
}
