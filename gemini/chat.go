// Package gemini implements the coursechat model interfaces using Google
// Gemini: chat generation with tool calling, text embeddings, and token
// counting.
package gemini

import (
	"context"

	"github.com/hransun/coursechat"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Ensure ChatClient implements coursechat.ChatClient at compile time.
var _ coursechat.ChatClient = (*ChatClient)(nil)

// ChatClient implements coursechat.ChatClient using Google Gemini.
type ChatClient struct {
	client *genai.Client
	model  string
}

// NewChatClient creates a new ChatClient. An empty model selects DefaultModel.
func NewChatClient(client *genai.Client, model string) *ChatClient {
	if model == "" {
		model = DefaultModel
	}
	return &ChatClient{client: client, model: model}
}

// Generate sends one request to Gemini and decodes the response into the
// tagged text-or-tool-calls form.
func (c *ChatClient) Generate(ctx context.Context, req coursechat.ChatRequest) (*coursechat.LLMResponse, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, BuildContents(req.Turns), BuildConfig(req.System, req.Tools))
	if err != nil {
		return nil, coursechat.Errorf(coursechat.EUNAVAILABLE, "gemini generate content: %v", err)
	}
	if result == nil {
		return nil, coursechat.Errorf(coursechat.EINTERNAL, "gemini returned nil result")
	}
	return DecodeResponse(result), nil
}

// BuildContents converts conversation turns to the Gemini wire form. Tool
// calls and tool results round-trip so a follow-up request can replay the
// first round verbatim.
func BuildContents(turns []coursechat.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == coursechat.RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if turn.Text != "" {
			parts = append(parts, &genai.Part{Text: turn.Text})
		}
		for _, call := range turn.ToolCalls {
			parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			}})
		}
		for _, result := range turn.ToolResults {
			response := map[string]any{"output": result.Content}
			if result.IsError {
				response = map[string]any{"error": result.Content}
			}
			parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
				ID:       result.ID,
				Name:     result.Name,
				Response: response,
			}})
		}

		contents = append(contents, &genai.Content{Role: string(role), Parts: parts})
	}
	return contents
}

// BuildConfig returns the GenerateContentConfig for one request. Tool
// schemas are attached only when tools are offered; omitting them forces a
// text response.
func BuildConfig(system string, tools []coursechat.ToolDefinition) *genai.GenerateContentConfig {
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   800,
	}
	if len(tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: buildDeclarations(tools)}}
	}
	return config
}

// buildDeclarations converts tool definitions to Gemini function
// declarations.
func buildDeclarations(tools []coursechat.ToolDefinition) []*genai.FunctionDeclaration {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(tool.Params)),
		}
		for _, param := range tool.Params {
			paramType := genai.TypeString
			if param.Type == "integer" {
				paramType = genai.TypeInteger
			}
			schema.Properties[param.Name] = &genai.Schema{
				Type:        paramType,
				Description: param.Description,
			}
			if param.Required {
				schema.Required = append(schema.Required, param.Name)
			}
		}
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  schema,
		})
	}
	return declarations
}

// DecodeResponse converts a Gemini response into the tagged variant: tool
// calls when the model requested any, plain text otherwise.
func DecodeResponse(result *genai.GenerateContentResponse) *coursechat.LLMResponse {
	response := &coursechat.LLMResponse{Text: result.Text()}
	for _, call := range result.FunctionCalls() {
		response.ToolCalls = append(response.ToolCalls, coursechat.ToolCall{
			ID:   call.ID,
			Name: call.Name,
			Args: call.Args,
		})
	}
	return response
}
