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

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), nil, strings.NewReader(""), stdout, stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, strings.NewReader(""), stdout, stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "coursechat")
	})

	t.Run("unknown command errors", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"bogus"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}
