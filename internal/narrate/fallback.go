package narrate

import (
	"context"
	"log/slog"
)

// FallbackProvider tries the primary provider and falls back to the
// secondary when the primary fails.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

func NewFallbackProvider(primary, secondary Provider) Provider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

func (f *FallbackProvider) Synthesize(ctx context.Context, text string, voice Voice) (*Result, error) {
	result, err := f.primary.Synthesize(ctx, text, voice)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	slog.Warn("Primary TTS provider failed, using fallback", "error", err)
	return f.secondary.Synthesize(ctx, text, voice)
}
