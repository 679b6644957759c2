package coursechat_test

import (
	"testing"

	"github.com/hransun/coursechat"
	"github.com/stretchr/testify/assert"
)

func TestLLMResponse_IsToolCall(t *testing.T) {
	t.Parallel()

	text := &coursechat.LLMResponse{Text: "answer"}
	assert.False(t, text.IsToolCall())

	call := &coursechat.LLMResponse{ToolCalls: []coursechat.ToolCall{{Name: "search_course_content"}}}
	assert.True(t, call.IsToolCall())
}

func TestLLMResponse_AssistantTurn(t *testing.T) {
	t.Parallel()

	resp := &coursechat.LLMResponse{
		Text:      "thinking out loud",
		ToolCalls: []coursechat.ToolCall{{ID: "a", Name: "search_course_content"}},
	}

	turn := resp.AssistantTurn()
	assert.Equal(t, coursechat.RoleAssistant, turn.Role)
	assert.Equal(t, "thinking out loud", turn.Text)
	assert.Equal(t, resp.ToolCalls, turn.ToolCalls)
}
