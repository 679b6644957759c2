// Package rag provides the retrieval-augmented answering orchestration.
// It coordinates session history, the tool-calling model protocol, and
// source attribution for a single user query, plus document ingestion into
// the vector store.
package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hransun/coursechat"
)

// systemPrompt is the static instruction block for the answering model.
// Built once; conversation history travels as turns, not prompt text.
const systemPrompt = `You are an AI assistant specialized in course materials and educational content with access to tools for course information.

Available Tools:
1. search_course_content: Search within course content for specific topics or detailed information
2. get_course_outline: Get course structure - title, course link, and complete lesson list with numbers and titles

Tool Selection Rules:
- Use get_course_outline when the user asks about the outline, structure, syllabus, or lesson list of a course
- Use search_course_content when the user asks about specific topics, concepts, or detailed explanations from lesson content

Response Protocol:
- General knowledge questions: answer using existing knowledge without searching
- Course-specific questions: use the appropriate tool first, then answer
- For outline queries, always include the course title, course link, and every lesson number and title
- No meta-commentary: provide direct answers only, without reasoning process or tool explanations

All responses must be brief, educational, clear, and example-supported when examples aid understanding.`

// Answer is the outcome of one answered query.
type Answer struct {
	// Text is the model's final answer.
	Text string `json:"text"`

	// Sources cites the retrieval results behind the answer, in result
	// order. Empty when no tool was invoked.
	Sources []coursechat.Source `json:"sources"`

	// SessionID identifies the conversation; minted when the caller did
	// not supply one.
	SessionID string `json:"sessionId"`
}

// System drives the bounded tool-calling protocol: at most two model calls
// per query, with one round of tool execution in between.
type System struct {
	LLM      coursechat.ChatClient
	Tools    *coursechat.ToolRegistry
	Sessions coursechat.SessionStore
}

// Answer answers one user query. A missing session id mints a new one and
// returns it for subsequent turns. Model call failures abort the query; tool
// execution failures degrade into textual tool results so the second model
// call can still proceed.
func (s *System) Answer(ctx context.Context, query, sessionID string) (*Answer, error) {
	if query == "" {
		return nil, coursechat.Errorf(coursechat.EINVALID, "query required")
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	turns := historyTurns(s.Sessions.History(sessionID))
	turns = append(turns, coursechat.Turn{Role: coursechat.RoleUser, Text: query})

	// Round one: the model may request tool execution.
	resp, err := s.LLM.Generate(ctx, coursechat.ChatRequest{
		System: systemPrompt,
		Turns:  turns,
		Tools:  s.Tools.Definitions(),
	})
	if err != nil {
		return nil, err
	}

	answer := resp.Text
	var sources []coursechat.Source
	if resp.IsToolCall() {
		turns = append(turns, resp.AssistantTurn())
		turns = append(turns, coursechat.Turn{
			Role:        coursechat.RoleUser,
			ToolResults: s.executeToolCalls(ctx, resp.ToolCalls),
		})

		// Sources are per-query transient state: collect and clear them
		// before the second model call so a failure cannot leave stale
		// labels behind for the next query.
		sources = s.Tools.Sources()
		s.Tools.ResetSources()

		// Round two: no tools offered, which forces a text response and
		// bounds the protocol to two model calls per query.
		final, err := s.LLM.Generate(ctx, coursechat.ChatRequest{
			System: systemPrompt,
			Turns:  turns,
		})
		if err != nil {
			return nil, err
		}
		answer = final.Text
	}

	s.Sessions.Append(sessionID, query, answer)

	return &Answer{Text: answer, Sources: sources, SessionID: sessionID}, nil
}

// executeToolCalls runs each requested call in order. Failures are caught
// per call and converted into error-flagged textual results.
func (s *System) executeToolCalls(ctx context.Context, calls []coursechat.ToolCall) []coursechat.ToolResult {
	results := make([]coursechat.ToolResult, 0, len(calls))
	for _, call := range calls {
		content, err := s.Tools.Execute(ctx, call.Name, call.Args)
		result := coursechat.ToolResult{ID: call.ID, Name: call.Name, Content: content}
		if err != nil {
			result.Content = fmt.Sprintf("error: %s", coursechat.ErrorMessage(err))
			result.IsError = true
		}
		results = append(results, result)
	}
	return results
}

// historyTurns expands stored exchanges into alternating conversation turns.
func historyTurns(exchanges []coursechat.Exchange) []coursechat.Turn {
	turns := make([]coursechat.Turn, 0, 2*len(exchanges)+1)
	for _, exchange := range exchanges {
		turns = append(turns,
			coursechat.Turn{Role: coursechat.RoleUser, Text: exchange.UserMessage},
			coursechat.Turn{Role: coursechat.RoleAssistant, Text: exchange.AssistantMessage},
		)
	}
	return turns
}
