package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adjosc/reddit-tiktok-creator/pkg/retry"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	elevenLabsModel   = "eleven_multilingual_v2"
	elevenLabsTimeout = 120 * time.Second
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ElevenLabsClient synthesizes narration through the ElevenLabs API.
type ElevenLabsClient struct {
	apiKey     string
	httpClient httpDoer
	baseURL    string
	speed      float64
}

type elevenLabsOption func(*ElevenLabsClient)

func withBaseURL(url string) elevenLabsOption {
	return func(c *ElevenLabsClient) {
		c.baseURL = url
	}
}

// NewElevenLabsClient builds a provider with the given key and speech
// speed multiplier.
func NewElevenLabsClient(apiKey string, speed float64) Provider {
	return newElevenLabsClient(apiKey, speed)
}

func newElevenLabsClient(apiKey string, speed float64, opts ...elevenLabsOption) *ElevenLabsClient {
	c := &ElevenLabsClient{
		apiKey:     apiKey,
		httpClient: retry.NewHTTPClient(&http.Client{Timeout: elevenLabsTimeout}, retry.DefaultPolicy()),
		baseURL:    elevenLabsBaseURL,
		speed:      speed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, voice Voice) (*Result, error) {
	payload := map[string]any{
		"text":     text,
		"model_id": elevenLabsModel,
		"voice_settings": map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.75,
			"speed":            c.speed,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voice.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs: %s - %s", resp.Status, string(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("elevenlabs: empty audio response")
	}

	return &Result{
		Audio:    body,
		Duration: estimateMP3Duration(body),
	}, nil
}

// estimateMP3Duration assumes 128 kbps constant bitrate.
func estimateMP3Duration(audio []byte) float64 {
	return float64(len(audio)*8) / 128000.0
}
