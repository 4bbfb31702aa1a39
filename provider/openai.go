package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/tools"
)

const DefaultOpenAIModel = shared.ChatModelGPT4oMini

// OpenAI talks to the Chat Completions API.
type OpenAI struct {
	client openai.Client
}

// NewOpenAI returns a client authenticated with apiKey. SDK retries are
// disabled; opts are applied after the defaults.
func NewOpenAI(apiKey string, opts ...option.RequestOption) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	return &OpenAI{client: openai.NewClient(append(base, opts...)...)}, nil
}

// OpenAIBaseURL returns the option overriding the endpoint, if any.
func OpenAIBaseURL(u string) []option.RequestOption {
	if u == "" {
		return nil
	}
	return []option.RequestOption{option.WithBaseURL(u)}
}

func (o *OpenAI) Complete(ctx context.Context, req Request) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:               shared.ChatModel(req.Model),
		MaxCompletionTokens: openai.Int(req.MaxTokens),
		Messages:            openAIMessages(req.System, req.Transcript),
		Temperature:         openai.Float(req.Temperature),
	}
	if params.Model == "" {
		params.Model = DefaultOpenAIModel
	}
	if len(req.Tools) > 0 {
		params.Tools = openAITools(req.Tools)
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromOpenAI(completion), nil
}

func openAITools(decls []tools.Declaration) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(decls))
	for _, d := range decls {
		tool := openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:       d.Name,
				Parameters: shared.FunctionParameters(d.InputSchema.Map()),
			},
		}
		if d.Description != "" {
			tool.Function.Description = openai.String(d.Description)
		}
		out = append(out, tool)
	}
	return out
}

// openAIMessages converts turns to chat messages. Adjacent assistant text and
// tool requests collapse into one assistant message carrying tool calls.
func openAIMessages(system string, turns conversation.History) []openai.ChatCompletionMessageParamUnion {
	var out []openai.ChatCompletionMessageParamUnion
	if system != "" {
		out = append(out, openai.SystemMessage(system))
	}

	var pending *openai.ChatCompletionAssistantMessageParam
	var pendingText strings.Builder
	flush := func() {
		if pending == nil {
			return
		}
		if pendingText.Len() > 0 {
			pending.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
				OfString: openai.String(pendingText.String()),
			}
		}
		out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: pending})
		pending = nil
		pendingText.Reset()
	}

	for _, t := range turns {
		switch t.Kind {
		case conversation.KindAssistantText, conversation.KindToolRequest:
			if pending == nil {
				pending = &openai.ChatCompletionAssistantMessageParam{}
			}
			if t.Kind == conversation.KindAssistantText {
				pendingText.WriteString(t.Text)
				continue
			}
			args, err := json.Marshal(t.Arguments)
			if err != nil || t.Arguments == nil {
				args = []byte("{}")
			}
			pending.ToolCalls = append(pending.ToolCalls, openai.ChatCompletionMessageToolCallParam{
				ID: t.RequestID,
				Function: openai.ChatCompletionMessageToolCallFunctionParam{
					Name:      t.ToolName,
					Arguments: string(args),
				},
			})
		case conversation.KindUserText:
			flush()
			out = append(out, openai.UserMessage(t.Text))
		case conversation.KindToolResult:
			flush()
			out = append(out, openai.ToolMessage(t.Payload, t.RequestID))
		case conversation.KindSystemError:
			flush()
			out = append(out, openai.UserMessage(systemErrorPrefix+t.Text))
		}
	}
	flush()
	return out
}

func fromOpenAI(completion *openai.ChatCompletion) *Response {
	resp := &Response{}
	if completion == nil {
		return resp
	}
	resp.Usage = Usage{InputTokens: completion.Usage.PromptTokens, OutputTokens: completion.Usage.CompletionTokens}
	if len(completion.Choices) == 0 {
		return resp
	}
	choice := completion.Choices[0]
	resp.StopReason = choice.FinishReason
	if choice.Message.Content != "" {
		resp.Blocks = append(resp.Blocks, TextBlock{Text: choice.Message.Content})
	}
	for _, tc := range choice.Message.ToolCalls {
		resp.Blocks = append(resp.Blocks, ToolRequestBlock{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return resp
}
