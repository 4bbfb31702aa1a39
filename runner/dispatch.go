package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/metrics"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/provider"
	"github.com/petasbytes/toolloop/tools"
)

// Invocation records one dispatched tool request. Exactly one of Output and
// Error is meaningful.
type Invocation struct {
	Tool     string         `json:"tool"`
	Input    map[string]any `json:"input"`
	Output   any            `json:"output,omitempty"`
	Error    string         `json:"error,omitempty"`
	ID       string         `json:"id,omitempty"`
	Duration time.Duration  `json:"duration"`
}

func (inv Invocation) Failed() bool { return inv.Error != "" }

// dispatch runs one tool request and returns its record plus the turns to
// append: a request/result pair on success, a single system-error otherwise.
func (r *Runner) dispatch(ctx context.Context, tr provider.ToolRequestBlock) (Invocation, []conversation.Turn) {
	id := tr.ID
	if id == "" {
		id = uuid.NewString()
	}
	args := tools.DecodeArgs(tr.Arguments)
	inv := Invocation{Tool: tr.Name, Input: args, ID: id}

	start := time.Now()
	fail := func(outcome, class string, err error) (Invocation, []conversation.Turn) {
		inv.Duration = time.Since(start)
		inv.Error = err.Error()
		r.metrics.ObserveTool(tr.Name, outcome, inv.Duration)
		r.emitToolExec(ctx, tr, inv.Duration, 0, class)
		r.log.Warn("tool failed", "tool", tr.Name, "id", id, "err", err)
		return inv, []conversation.Turn{conversation.SystemError(inv.Error)}
	}

	desc, ok := r.registry.Lookup(tr.Name)
	if !ok {
		return fail(metrics.OutcomeNotFound, "tool not found", fmt.Errorf("%w: %s", tools.ErrToolNotFound, tr.Name))
	}
	if r.validate {
		if err := tools.ValidateArgs(args, desc.Schema); err != nil {
			return fail(metrics.OutcomeError, "invalid arguments", fmt.Errorf("Error executing tool %s: %w", tr.Name, err))
		}
	}

	out, err := safeCall(ctx, desc.Callable, maps.Clone(args))
	if err == nil {
		var payload string
		payload, err = serialize(out)
		if err == nil {
			inv.Duration = time.Since(start)
			inv.Output = out
			r.metrics.ObserveTool(tr.Name, metrics.OutcomeOK, inv.Duration)
			r.emitToolExec(ctx, tr, inv.Duration, len(payload), "")
			return inv, []conversation.Turn{
				conversation.ToolRequest(id, tr.Name, args),
				conversation.ToolResult(id, payload),
			}
		}
	}
	return fail(metrics.OutcomeError, "tool error", fmt.Errorf("Error executing tool %s: %w", tr.Name, err))
}

func safeCall(ctx context.Context, c tools.Callable, args map[string]any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return c.Call(ctx, args)
}

// serialize renders a tool output for the tool-result payload: strings pass
// through, everything else is JSON.
func serialize(out any) (string, error) {
	switch v := out.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	return string(b), nil
}

// emitToolExec records sizes and timing only; errClass is a fixed label,
// never the error text.
func (r *Runner) emitToolExec(ctx context.Context, tr provider.ToolRequestBlock, d time.Duration, outSize int, errClass string) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	fields := map[string]any{
		"tool_name":   tr.Name,
		"duration_ms": d.Milliseconds(),
		"input_size":  len(tr.Arguments),
		"output_size": outSize,
		"turn_id":     turnID,
	}
	if errClass != "" {
		fields["error"] = errClass
	} else {
		fields["error"] = nil
	}
	r.sink.Emit("tool_exec", fields)
}
