// Package assess rates fetched posts for short-video potential using a
// hosted LLM.
package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/conneroisu/groq-go"

	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/pkg/prompts"
)

// Rated wraps a post with its assessment.
type Rated struct {
	Post         reddit.Post `json:"post"`
	Rating       float64     `json:"humor_rating"`
	Reasoning    string      `json:"assessment_reasoning"`
	Improvements string      `json:"suggested_improvements"`
	AssessedAt   time.Time   `json:"assessed_at"`
}

// Assessor rates posts against a minimum threshold.
type Assessor struct {
	client   *groq.Client
	model    groq.ChatModel
	audience string
	prompts  *prompts.Prompts
	now      func() time.Time
}

// New builds an Assessor for the given model and audience focus.
// Prompt templates come from prompts.yaml when present.
func New(apiKey, model, audience string) (*Assessor, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}
	p, err := prompts.Load()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}
	return &Assessor{
		client:   client,
		model:    groq.ChatModel(model),
		audience: audience,
		prompts:  p,
		now:      time.Now,
	}, nil
}

// Rate assesses every post and returns those at or above minRating,
// sorted by rating descending. Individual assessment failures are
// logged and skipped; an empty result is an error.
func (a *Assessor) Rate(ctx context.Context, posts []reddit.Post, minRating float64) ([]Rated, error) {
	slog.Info("Assessing posts", "count", len(posts), "min_rating", minRating)

	var accepted []Rated
	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rated, err := a.rateOne(ctx, post)
		if err != nil {
			slog.Warn("Failed to assess post", "index", i+1, "post_id", post.ID, "error", err)
			continue
		}

		if rated.Rating < minRating {
			slog.Info("Post rejected", "post_id", post.ID, "rating", rated.Rating)
			continue
		}
		slog.Info("Post accepted", "post_id", post.ID, "rating", rated.Rating)
		accepted = append(accepted, rated)
	}

	if len(accepted) == 0 {
		return nil, fmt.Errorf("no posts rated %.1f or above out of %d assessed", minRating, len(posts))
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Rating > accepted[j].Rating })
	return accepted, nil
}

type assessment struct {
	Rating       float64 `json:"rating"`
	Reasoning    string  `json:"reasoning"`
	Improvements string  `json:"improvements"`
}

func (a *Assessor) rateOne(ctx context.Context, post reddit.Post) (Rated, error) {
	prompt, err := a.prompts.RenderRate(rateParams(post, a.audience))
	if err != nil {
		return Rated{}, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := a.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: a.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: a.prompts.Assessment.System},
			{Role: groq.RoleUser, Content: prompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return Rated{}, fmt.Errorf("assess: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Rated{}, fmt.Errorf("no response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return Rated{}, fmt.Errorf("empty response")
	}

	var result assessment
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return Rated{}, fmt.Errorf("parse assessment: %w", err)
	}

	return Rated{
		Post:         post,
		Rating:       clampRating(result.Rating),
		Reasoning:    result.Reasoning,
		Improvements: result.Improvements,
		AssessedAt:   a.now().UTC(),
	}, nil
}

func clampRating(r float64) float64 {
	if r < 1 {
		return 1
	}
	if r > 10 {
		return 10
	}
	return r
}
