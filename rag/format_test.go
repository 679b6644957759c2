package rag_test

import (
	"testing"

	"github.com/hransun/coursechat/rag"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", rag.FormatBytes(512))
	assert.Equal(t, "1.5 KB", rag.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", rag.FormatBytes(2*1024*1024))
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~999 tokens", rag.FormatTokens(999))
	assert.Equal(t, "~2k tokens", rag.FormatTokens(1500))
	assert.Equal(t, "~1k tokens", rag.FormatTokens(1000))
}
