package assess

import (
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/pkg/prompts"
)

var audienceFocus = map[string]string{
	"general":         "Rate for broad appeal across all age groups.",
	"young_adult":     "Rate specifically for 18-25 year old viewers.",
	"family":          "Rate for family-safe content suitable for all ages.",
	"family_friendly": "Rate for family-safe content suitable for all ages.",
	"comedy":          "Rate purely for comedic value and humor quality.",
	"quality_focused": "Rate strictly, rewarding only clearly excellent storytelling.",
	"broad":           "Rate for broad appeal across all age groups.",
}

const maxBodyInPrompt = 800

func rateParams(post reddit.Post, audience string) prompts.RateParams {
	body := post.Body
	if len(body) > maxBodyInPrompt {
		body = body[:maxBodyInPrompt]
	}

	focus, ok := audienceFocus[audience]
	if !ok {
		focus = audienceFocus["general"]
	}

	return prompts.RateParams{
		Title:         post.Title,
		Body:          body,
		Subreddit:     post.Subreddit,
		Score:         post.Score,
		AudienceFocus: focus,
	}
}
