package coursechat

import "context"

// Turn roles in a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one conversation turn sent to the model. A turn carries plain
// text, tool calls issued by the assistant, or tool results supplied in
// reply, and round-trips unchanged so adapters can replay the conversation.
type Turn struct {
	Role        string
	Text        string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	// ID correlates the call with its result. May be empty for providers
	// that correlate by name.
	ID string

	// Name of the tool to invoke.
	Name string

	// Arguments decoded from the model's request.
	Args map[string]any
}

// ToolResult is the outcome of executing one requested tool call.
type ToolResult struct {
	ID      string
	Name    string
	Content string

	// IsError marks results produced from a failed tool execution so the
	// model can recover instead of treating them as observations.
	IsError bool
}

// LLMResponse is the decoded model response: either plain text or a
// sequence of requested tool calls.
type LLMResponse struct {
	Text      string
	ToolCalls []ToolCall
}

// IsToolCall reports whether the response requests tool execution.
func (r *LLMResponse) IsToolCall() bool {
	return len(r.ToolCalls) > 0
}

// AssistantTurn converts the response into the turn to append to the
// conversation before sending tool results back.
func (r *LLMResponse) AssistantTurn() Turn {
	return Turn{Role: RoleAssistant, Text: r.Text, ToolCalls: r.ToolCalls}
}

// ChatRequest is one request to the model.
type ChatRequest struct {
	// System instructions prepended to the conversation.
	System string

	// Turns in conversation order, ending with the newest user turn or
	// the tool results of the previous round.
	Turns []Turn

	// Tools the model may request. Empty means tool use is not offered,
	// which forces a text response.
	Tools []ToolDefinition
}

// ChatClient generates model responses. Implementations hide the vendor
// wire format and decode tool-call payloads into the tagged LLMResponse.
type ChatClient interface {
	Generate(ctx context.Context, req ChatRequest) (*LLMResponse, error)
}

// ToolDefinition describes one callable tool in the schema offered to the
// model.
type ToolDefinition struct {
	Name        string
	Description string
	Params      []ToolParam
}

// ToolParam describes one tool argument.
type ToolParam struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
}
