package coursechat

import "context"

// Source labels one retrieval result for citation in the final answer.
type Source struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

// Tool is one operation the model can invoke. Execution failures are
// returned as errors and converted to textual tool results by the caller;
// a tool that finds nothing returns a descriptive observation, not an error.
type Tool interface {
	// Definition returns the schema offered to the model.
	Definition() ToolDefinition

	// Execute runs the tool with the model-supplied arguments.
	Execute(ctx context.Context, args map[string]any) (string, error)

	// Sources returns the citation labels accumulated by the most recent
	// executions, in result order.
	Sources() []Source

	// ResetSources clears the accumulated labels. Sources are per-query
	// transient state, not per-session.
	ResetSources()
}

// ToolRegistry holds the tools offered to the model and dispatches
// execution by name.
type ToolRegistry struct {
	tools []Tool
	index map[string]Tool
}

// NewToolRegistry creates a registry with the given tools.
func NewToolRegistry(tools ...Tool) *ToolRegistry {
	r := &ToolRegistry{index: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		r.tools = append(r.tools, tool)
		r.index[tool.Definition().Name] = tool
	}
	return r
}

// Definitions returns the schemas of all registered tools in registration
// order.
func (r *ToolRegistry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition())
	}
	return defs
}

// Execute dispatches one tool call. An unknown tool name yields a textual
// observation rather than an error so the model can recover.
func (r *ToolRegistry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, ok := r.index[name]
	if !ok {
		return "Tool '" + name + "' not found", nil
	}
	return tool.Execute(ctx, args)
}

// Sources returns the citation labels accumulated by all tools since the
// last reset, in registration then result order.
func (r *ToolRegistry) Sources() []Source {
	var sources []Source
	for _, tool := range r.tools {
		sources = append(sources, tool.Sources()...)
	}
	return sources
}

// ResetSources clears accumulated labels on every registered tool.
func (r *ToolRegistry) ResetSources() {
	for _, tool := range r.tools {
		tool.ResetSources()
	}
}
