// Package provider adapts hosted completion APIs to a single request/response
// shape. Vendor content blocks are decoded here into a closed set of variants
// so nothing past this package depends on an SDK.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/tools"
)

// ErrMissingAPIKey is returned when a client is constructed without a credential.
var ErrMissingAPIKey = errors.New("provider: missing API key")

// Client performs one completion round trip. Transport errors are returned
// as-is and never retried.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request is built once per round and not modified afterwards. A nil Tools
// slice means no tool declarations are sent.
type Request struct {
	Model       string
	System      string
	MaxTokens   int64
	Temperature float64
	Transcript  conversation.History
	Tools       []tools.Declaration
}

// Block is a decoded content block: TextBlock or ToolRequestBlock.
type Block interface {
	isBlock()
}

type TextBlock struct {
	Text string
}

// ToolRequestBlock asks for a tool invocation. Arguments holds the raw JSON
// the model produced; it may be an object, a string or malformed.
type ToolRequestBlock struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

func (TextBlock) isBlock()        {}
func (ToolRequestBlock) isBlock() {}

type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

type Response struct {
	Blocks     []Block
	StopReason string
	Usage      Usage
}

// Text concatenates the text blocks in order with no separator.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, b := range r.Blocks {
		if tb, ok := b.(TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String()
}

// ToolRequests returns the tool request blocks in emitted order.
func (r *Response) ToolRequests() []ToolRequestBlock {
	if r == nil {
		return nil
	}
	var out []ToolRequestBlock
	for _, b := range r.Blocks {
		if tr, ok := b.(ToolRequestBlock); ok {
			out = append(out, tr)
		}
	}
	return out
}

// Supported provider names.
const (
	NameAnthropic = "anthropic"
	NameOpenAI    = "openai"
)

// New constructs the named client. baseURL may be empty.
func New(name, apiKey, baseURL string) (Client, error) {
	switch name {
	case NameAnthropic:
		return NewAnthropic(apiKey, AnthropicBaseURL(baseURL)...)
	case NameOpenAI:
		return NewOpenAI(apiKey, OpenAIBaseURL(baseURL)...)
	}
	return nil, fmt.Errorf("provider: unknown provider %q", name)
}

const systemErrorPrefix = "[system error] "
