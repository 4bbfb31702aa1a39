package telemetry

import (
	"context"

	"github.com/petasbytes/toolloop/internal/metrics"
)

// FeaturesVersion tags the shape of prompt_features events.
const FeaturesVersion = "1"

// EmitPromptFeatures records size features of a user prompt.
func (s *Sink) EmitPromptFeatures(ctx context.Context, prompt string) {
	if !s.Enabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	s.Emit("prompt_features", map[string]any{
		"turn_id":          turnID,
		"features_version": FeaturesVersion,
		"user":             metrics.CountFeatures(prompt).Fields(),
	})
}
