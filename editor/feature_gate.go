package editor

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
)

// FeatureAIEditor gates the AI editor entry point.
const FeatureAIEditor = "linkbio.ai_editor"

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string) (bool, error) {
	if gate == nil {
		return true, nil
	}
	return gate.Enabled(ctx, key)
}

// StaticGate is a fixed feature table. Unknown keys are enabled.
type StaticGate map[string]bool

var _ featuregate.FeatureGate = StaticGate(nil)

// Enabled implements featuregate.FeatureGate.
func (g StaticGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	enabled, ok := g[key]
	if !ok {
		return true, nil
	}
	return enabled, nil
}
