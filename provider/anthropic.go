package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/tools"
)

const DefaultAnthropicModel = anthropic.ModelClaude3_7Sonnet20250219

// Anthropic talks to the Messages API.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic returns a client authenticated with apiKey. SDK retries are
// disabled; opts are applied after the defaults.
func NewAnthropic(apiKey string, opts ...option.RequestOption) (*Anthropic, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	return &Anthropic{client: anthropic.NewClient(append(base, opts...)...)}, nil
}

// AnthropicBaseURL returns the option overriding the endpoint, if any.
func AnthropicBaseURL(u string) []option.RequestOption {
	if u == "" {
		return nil
	}
	return []option.RequestOption{option.WithBaseURL(u)}
}

func (a *Anthropic) Complete(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Messages:    anthropicMessages(req.Transcript),
		Temperature: anthropic.Float(req.Temperature),
	}
	if params.Model == "" {
		params.Model = DefaultAnthropicModel
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if len(req.Tools) > 0 {
		params.Tools = anthropicTools(req.Tools)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromAnthropic(msg), nil
}

func anthropicTools(decls []tools.Declaration) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(decls))
	for _, d := range decls {
		tool := anthropic.ToolParam{
			Name: d.Name,
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: d.InputSchema.Map()["properties"],
				Required:   d.InputSchema.Required,
			},
		}
		if d.Description != "" {
			tool.Description = anthropic.String(d.Description)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return out
}

// anthropicMessages converts turns to message params, merging adjacent turns
// that share a role. Empty text turns are dropped since the API rejects them.
func anthropicMessages(turns conversation.History) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, t := range turns {
		block, ok := anthropicBlock(t)
		if !ok {
			continue
		}
		role := anthropic.MessageParamRoleUser
		if t.Role() == conversation.RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content = append(out[n-1].Content, block)
			continue
		}
		out = append(out, anthropic.MessageParam{Role: role, Content: []anthropic.ContentBlockParamUnion{block}})
	}
	return out
}

func anthropicBlock(t conversation.Turn) (anthropic.ContentBlockParamUnion, bool) {
	switch t.Kind {
	case conversation.KindUserText, conversation.KindAssistantText:
		if t.Text == "" {
			return anthropic.ContentBlockParamUnion{}, false
		}
		return anthropic.NewTextBlock(t.Text), true
	case conversation.KindToolRequest:
		args := t.Arguments
		if args == nil {
			args = map[string]any{}
		}
		return anthropic.NewToolUseBlock(t.RequestID, args, t.ToolName), true
	case conversation.KindToolResult:
		return anthropic.NewToolResultBlock(t.RequestID, t.Payload, false), true
	case conversation.KindSystemError:
		return anthropic.NewTextBlock(systemErrorPrefix + t.Text), true
	}
	return anthropic.ContentBlockParamUnion{}, false
}

func fromAnthropic(msg *anthropic.Message) *Response {
	resp := &Response{
		StopReason: string(msg.StopReason),
		Usage:      Usage{InputTokens: msg.Usage.InputTokens, OutputTokens: msg.Usage.OutputTokens},
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			resp.Blocks = append(resp.Blocks, TextBlock{Text: block.Text})
		case "tool_use":
			resp.Blocks = append(resp.Blocks, ToolRequestBlock{ID: block.ID, Name: block.Name, Arguments: block.Input})
		}
	}
	return resp
}
