package mock

import (
	"context"

	"github.com/hransun/coursechat"
)

var _ coursechat.Tool = (*Tool)(nil)

// Tool is a mock implementation of coursechat.Tool.
type Tool struct {
	DefinitionFn   func() coursechat.ToolDefinition
	ExecuteFn      func(ctx context.Context, args map[string]any) (string, error)
	SourcesFn      func() []coursechat.Source
	ResetSourcesFn func()
}

func (t *Tool) Definition() coursechat.ToolDefinition {
	return t.DefinitionFn()
}

func (t *Tool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return t.ExecuteFn(ctx, args)
}

func (t *Tool) Sources() []coursechat.Source {
	if t.SourcesFn == nil {
		return nil
	}
	return t.SourcesFn()
}

func (t *Tool) ResetSources() {
	if t.ResetSourcesFn != nil {
		t.ResetSourcesFn()
	}
}
