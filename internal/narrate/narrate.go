// Package narrate turns assessed posts into narration scripts and
// synthesized speech.
package narrate

import (
	"context"
	"strings"
)

// DefaultWordsPerMinute is the assumed narration pace at 1.0 speed.
const DefaultWordsPerMinute = 150.0

// Result is synthesized narration audio with an estimated duration in
// seconds. The composer measures the real duration with ffprobe.
type Result struct {
	Audio    []byte
	Duration float64
}

// Voice identifies a synthesis voice.
type Voice struct {
	ID   string
	Name string
}

// Provider synthesizes speech for a script.
type Provider interface {
	Synthesize(ctx context.Context, text string, voice Voice) (*Result, error)
}

// EstimateDuration guesses how long text takes to read aloud.
func EstimateDuration(text string, wordsPerMinute float64) float64 {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	return float64(len(strings.Fields(text))) / wordsPerMinute * 60.0
}
