package runner

import (
	"context"
	"fmt"

	"github.com/petasbytes/toolloop/conversation"
	"github.com/petasbytes/toolloop/internal/telemetry"
	"github.com/petasbytes/toolloop/internal/windowing"
	"github.com/petasbytes/toolloop/provider"
)

// Reply is the outcome of a plain generation.
type Reply struct {
	Response string
	History  conversation.History
	Usage    provider.Usage
}

// Result is the outcome of a tool-enabled generation. Warning is set only
// when the iteration budget ran out; Response then holds the text of the last
// model response seen.
type Result struct {
	Response   string
	ToolUsage  []Invocation
	History    conversation.History
	Warning    string
	Iterations int
	Usage      provider.Usage
}

// Generate performs one model round trip with no tool declarations.
// p.History is never modified.
func (r *Runner) Generate(ctx context.Context, prompt string, p Params) (*Reply, error) {
	if r.client == nil {
		return nil, errNilClient
	}
	ctx, _ = telemetry.EnsureTurnID(ctx)
	r.sink.EmitPromptFeatures(ctx, prompt)

	transcript := p.History.Append(conversation.UserText(prompt))
	resp, err := r.complete(ctx, r.baseRequest(p), transcript)
	if err != nil {
		return nil, err
	}
	text := resp.Text()
	return &Reply{
		Response: text,
		History:  transcript.Append(conversation.AssistantText(text)),
		Usage:    resp.Usage,
	}, nil
}

// GenerateWithTools runs the tool-use loop. With an empty registry it is
// Generate with an empty trail. Only transport and windowing failures are
// returned as errors; tool failures are recorded and fed back to the model.
func (r *Runner) GenerateWithTools(ctx context.Context, prompt string, p Params) (*Result, error) {
	if r.registry.Len() == 0 {
		reply, err := r.Generate(ctx, prompt, p)
		if err != nil {
			return nil, err
		}
		return &Result{
			Response:   reply.Response,
			ToolUsage:  []Invocation{},
			History:    reply.History,
			Iterations: 1,
			Usage:      reply.Usage,
		}, nil
	}
	if r.client == nil {
		return nil, errNilClient
	}

	ctx, turnID := telemetry.EnsureTurnID(ctx)
	r.sink.EmitPromptFeatures(ctx, prompt)

	req := r.baseRequest(p)
	req.Tools = r.registry.DescribeAll()
	maxIter := r.maxIterations(p)

	res := &Result{ToolUsage: []Invocation{}}
	transcript := p.History.Append(conversation.UserText(prompt))
	var last string

	for round := 1; round <= maxIter; round++ {
		res.Iterations = round
		r.log.Debug("model round", "turn_id", turnID, "round", round, "turns", len(transcript))

		resp, err := r.complete(ctx, req, transcript)
		if err != nil {
			return nil, err
		}
		res.Usage.InputTokens += resp.Usage.InputTokens
		res.Usage.OutputTokens += resp.Usage.OutputTokens

		last = resp.Text()
		requests := resp.ToolRequests()
		if len(requests) == 0 {
			res.Response = last
			res.History = transcript.Append(conversation.AssistantText(last))
			return res, nil
		}

		if last != "" {
			transcript = transcript.Append(conversation.AssistantText(last))
		}
		for _, tr := range requests {
			inv, turns := r.dispatch(ctx, tr)
			res.ToolUsage = append(res.ToolUsage, inv)
			transcript = transcript.Append(turns...)
		}
	}

	r.metrics.ObserveExhausted()
	r.log.Warn("tool iterations exhausted", "turn_id", turnID, "max_iterations", maxIter, "tool_calls", len(res.ToolUsage))

	res.Response = last
	res.History = transcript
	res.Warning = fmt.Sprintf("maximum tool iterations (%d) reached without a final response", maxIter)
	return res, nil
}

// complete sends one round, narrowing the transcript to the token budget
// when one is configured.
func (r *Runner) complete(ctx context.Context, req provider.Request, transcript conversation.History) (*provider.Response, error) {
	window := transcript
	if r.cfg.TokenBudget > 0 {
		w, stats := windowing.PrepareSendWindow(transcript, r.cfg.TokenBudget, r.counter)
		turnID, _ := telemetry.TurnIDFromContext(ctx)
		r.sink.Emit("window_prepared", map[string]any{
			"turn_id":            turnID,
			"model":              req.Model,
			"budget":             stats.Budget,
			"total_estimated":    stats.Total,
			"included_groups":    stats.IncludedGroups,
			"skipped_groups":     stats.SkippedGroups,
			"over_budget_newest": stats.OverBudgetNewest,
			"extended_to_user":   stats.ExtendedToUser,
		})
		if stats.OverBudgetNewest {
			return nil, fmt.Errorf("%w (budget %d)", ErrNewestOverBudget, stats.Budget)
		}
		if stats.ExtendedToUser {
			r.log.Debug("window widened past budget to open on a user turn", "turn_id", turnID, "estimated", stats.Total, "budget", stats.Budget)
		}
		if stats.SkippedGroups > 0 {
			r.log.Debug("window narrowed", "turn_id", turnID, "skipped_groups", stats.SkippedGroups, "estimated", stats.Total)
		}
		window = w
	}

	req.Transcript = window
	r.metrics.ObserveRound()
	return r.client.Complete(ctx, req)
}
