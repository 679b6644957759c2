package rag_test

import (
	"context"
	"testing"

	"github.com/hransun/coursechat"
	"github.com/hransun/coursechat/mock"
	"github.com/hransun/coursechat/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessions returns a mock session store backed by a map.
func memorySessions() (*mock.SessionStore, map[string][]coursechat.Exchange) {
	sessions := make(map[string][]coursechat.Exchange)
	store := &mock.SessionStore{
		HistoryFn: func(sessionID string) []coursechat.Exchange {
			return sessions[sessionID]
		},
		AppendFn: func(sessionID, userMessage, assistantMessage string) {
			sessions[sessionID] = append(sessions[sessionID], coursechat.Exchange{
				UserMessage:      userMessage,
				AssistantMessage: assistantMessage,
			})
		},
	}
	return store, sessions
}

func searchMock(executeFn func(ctx context.Context, args map[string]any) (string, error)) *mock.Tool {
	tool := &mock.Tool{
		DefinitionFn: func() coursechat.ToolDefinition {
			return coursechat.ToolDefinition{Name: "search_course_content"}
		},
		ExecuteFn: executeFn,
	}
	return tool
}

func TestSystem_Answer(t *testing.T) {
	t.Parallel()

	t.Run("direct answer without tools", func(t *testing.T) {
		t.Parallel()

		var calls int
		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				calls++
				assert.NotEmpty(t, req.System)
				assert.NotEmpty(t, req.Tools)
				require.Len(t, req.Turns, 1)
				assert.Equal(t, coursechat.RoleUser, req.Turns[0].Role)
				assert.Equal(t, "what is go", req.Turns[0].Text)
				return &coursechat.LLMResponse{Text: "Go is a programming language."}, nil
			},
		}
		sessions, stored := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(searchMock(nil)),
			Sessions: sessions,
		}

		answer, err := system.Answer(context.Background(), "what is go", "")
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, "Go is a programming language.", answer.Text)
		assert.Empty(t, answer.Sources)
		assert.NotEmpty(t, answer.SessionID, "session id should be minted")
		require.Len(t, stored[answer.SessionID], 1)
		assert.Equal(t, "what is go", stored[answer.SessionID][0].UserMessage)
	})

	t.Run("tool call round trip", func(t *testing.T) {
		t.Parallel()

		tool := searchMock(func(_ context.Context, args map[string]any) (string, error) {
			assert.Equal(t, map[string]any{"query": "MCP transports"}, args)
			return "[MCP Course - Lesson 2]\ntransport details", nil
		})
		tool.SourcesFn = func() []coursechat.Source {
			return []coursechat.Source{{Text: "MCP Course - Lesson 2"}}
		}
		var resets int
		tool.ResetSourcesFn = func() { resets++ }

		var calls int
		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				calls++
				switch calls {
				case 1:
					return &coursechat.LLMResponse{ToolCalls: []coursechat.ToolCall{{
						ID:   "call-1",
						Name: "search_course_content",
						Args: map[string]any{"query": "MCP transports"},
					}}}, nil
				case 2:
					assert.Empty(t, req.Tools, "second round must not offer tools")
					require.Len(t, req.Turns, 3)
					assert.Equal(t, coursechat.RoleAssistant, req.Turns[1].Role)
					require.Len(t, req.Turns[2].ToolResults, 1)
					result := req.Turns[2].ToolResults[0]
					assert.Equal(t, "call-1", result.ID)
					assert.Equal(t, "[MCP Course - Lesson 2]\ntransport details", result.Content)
					assert.False(t, result.IsError)
					return &coursechat.LLMResponse{Text: "MCP supports stdio and HTTP."}, nil
				default:
					t.Fatal("more than two model calls")
					return nil, nil
				}
			},
		}
		sessions, _ := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(tool),
			Sessions: sessions,
		}

		answer, err := system.Answer(context.Background(), "how does MCP transport work", "sess")
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
		assert.Equal(t, "MCP supports stdio and HTTP.", answer.Text)
		assert.Equal(t, []coursechat.Source{{Text: "MCP Course - Lesson 2"}}, answer.Sources)
		assert.Equal(t, "sess", answer.SessionID)
		assert.Equal(t, 1, resets, "sources must be reset after the answer")
	})

	t.Run("multiple tool calls execute in one round", func(t *testing.T) {
		t.Parallel()

		var executed []string
		tool := searchMock(func(_ context.Context, args map[string]any) (string, error) {
			executed = append(executed, args["query"].(string))
			return "ok", nil
		})

		var calls int
		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				calls++
				if calls == 1 {
					return &coursechat.LLMResponse{ToolCalls: []coursechat.ToolCall{
						{ID: "a", Name: "search_course_content", Args: map[string]any{"query": "first"}},
						{ID: "b", Name: "search_course_content", Args: map[string]any{"query": "second"}},
					}}, nil
				}
				require.Len(t, req.Turns[2].ToolResults, 2)
				return &coursechat.LLMResponse{Text: "done"}, nil
			},
		}
		sessions, _ := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(tool),
			Sessions: sessions,
		}

		_, err := system.Answer(context.Background(), "q", "sess")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []string{"first", "second"}, executed)
	})

	t.Run("tool failure degrades into textual result", func(t *testing.T) {
		t.Parallel()

		tool := searchMock(func(_ context.Context, _ map[string]any) (string, error) {
			return "", coursechat.Errorf(coursechat.EUNAVAILABLE, "embedding api unreachable")
		})

		var calls int
		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				calls++
				if calls == 1 {
					return &coursechat.LLMResponse{ToolCalls: []coursechat.ToolCall{{
						ID: "a", Name: "search_course_content", Args: map[string]any{"query": "q"},
					}}}, nil
				}
				require.Len(t, req.Turns[2].ToolResults, 1)
				result := req.Turns[2].ToolResults[0]
				assert.True(t, result.IsError)
				assert.Equal(t, "error: embedding api unreachable", result.Content)
				return &coursechat.LLMResponse{Text: "I could not search just now."}, nil
			},
		}
		sessions, _ := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(tool),
			Sessions: sessions,
		}

		answer, err := system.Answer(context.Background(), "q", "sess")
		require.NoError(t, err)
		assert.Equal(t, "I could not search just now.", answer.Text)
	})

	t.Run("history precedes the new query", func(t *testing.T) {
		t.Parallel()

		sessions, stored := memorySessions()
		stored["sess"] = []coursechat.Exchange{
			{UserMessage: "old question", AssistantMessage: "old answer"},
		}

		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				require.Len(t, req.Turns, 3)
				assert.Equal(t, coursechat.RoleUser, req.Turns[0].Role)
				assert.Equal(t, "old question", req.Turns[0].Text)
				assert.Equal(t, coursechat.RoleAssistant, req.Turns[1].Role)
				assert.Equal(t, "old answer", req.Turns[1].Text)
				assert.Equal(t, "follow up", req.Turns[2].Text)
				return &coursechat.LLMResponse{Text: "answer"}, nil
			},
		}

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(searchMock(nil)),
			Sessions: sessions,
		}

		answer, err := system.Answer(context.Background(), "follow up", "sess")
		require.NoError(t, err)
		assert.Equal(t, "sess", answer.SessionID)
		require.Len(t, stored["sess"], 2)
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()

		system := &rag.System{}
		_, err := system.Answer(context.Background(), "", "sess")
		require.Error(t, err)
		assert.Equal(t, coursechat.EINVALID, coursechat.ErrorCode(err))
	})

	t.Run("failed second round does not leak sources into the next query", func(t *testing.T) {
		t.Parallel()

		var sources []coursechat.Source
		tool := searchMock(func(_ context.Context, _ map[string]any) (string, error) {
			sources = append(sources, coursechat.Source{Text: "Stale Course - Lesson 1"})
			return "results", nil
		})
		tool.SourcesFn = func() []coursechat.Source { return sources }
		tool.ResetSourcesFn = func() { sources = nil }

		var calls int
		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, _ coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				calls++
				switch calls {
				case 1:
					return &coursechat.LLMResponse{ToolCalls: []coursechat.ToolCall{{
						ID: "a", Name: "search_course_content", Args: map[string]any{"query": "q"},
					}}}, nil
				case 2:
					return nil, coursechat.Errorf(coursechat.EUNAVAILABLE, "model unreachable")
				default:
					return &coursechat.LLMResponse{Text: "4"}, nil
				}
			},
		}
		sessions, _ := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(tool),
			Sessions: sessions,
		}

		_, err := system.Answer(context.Background(), "first question", "sess")
		require.Error(t, err)

		answer, err := system.Answer(context.Background(), "what is 2+2", "sess")
		require.NoError(t, err)
		assert.Equal(t, "4", answer.Text)
		assert.Empty(t, answer.Sources, "the failed query's sources must not attach to the next answer")
	})

	t.Run("model failure aborts without recording", func(t *testing.T) {
		t.Parallel()

		llm := &mock.ChatClient{
			GenerateFn: func(_ context.Context, _ coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
				return nil, coursechat.Errorf(coursechat.EUNAVAILABLE, "model unreachable")
			},
		}
		sessions, stored := memorySessions()

		system := &rag.System{
			LLM:      llm,
			Tools:    coursechat.NewToolRegistry(searchMock(nil)),
			Sessions: sessions,
		}

		_, err := system.Answer(context.Background(), "q", "sess")
		require.Error(t, err)
		assert.Equal(t, coursechat.EUNAVAILABLE, coursechat.ErrorCode(err))
		assert.Empty(t, stored["sess"])
	})
}
