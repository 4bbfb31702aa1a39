package runner_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/petasbytes/toolloop/provider"
)

// scriptedClient replays responses in order and keeps every request. The last
// response repeats once the script runs out.
type scriptedClient struct {
	mu        sync.Mutex
	responses []*provider.Response
	errs      []error
	requests  []provider.Request
}

func (s *scriptedClient) Complete(_ context.Context, req provider.Request) (*provider.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	i := len(s.requests) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if len(s.responses) == 0 {
		return &provider.Response{}, nil
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func script(responses ...*provider.Response) *scriptedClient {
	return &scriptedClient{responses: responses}
}

func text(parts ...string) *provider.Response {
	resp := &provider.Response{StopReason: "end_turn"}
	for _, p := range parts {
		resp.Blocks = append(resp.Blocks, provider.TextBlock{Text: p})
	}
	return resp
}

func call(id, name, args string) provider.Block {
	return provider.ToolRequestBlock{ID: id, Name: name, Arguments: json.RawMessage(args)}
}

func toolUse(blocks ...provider.Block) *provider.Response {
	return &provider.Response{Blocks: blocks, StopReason: "tool_use"}
}
