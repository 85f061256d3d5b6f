// Package prompts holds the LLM prompt templates. Built-in defaults
// can be overridden with a prompts.yaml next to the binary.
package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

type Prompts struct {
	Assessment AssessmentPrompts `yaml:"assessment"`
}

type AssessmentPrompts struct {
	System string `yaml:"system"`
	Rate   string `yaml:"rate"`
}

// RateParams fills the rating prompt for one post.
type RateParams struct {
	Title         string
	Body          string
	Subreddit     string
	Score         int
	AudienceFocus string
}

const defaultSystem = `You rate Reddit posts for their potential as narrated ` +
	`short-form vertical videos. Respond with a JSON object containing ` +
	`"rating" (number 1-10), "reasoning" (2-3 sentences), and ` +
	`"improvements" (suggestions, or "None needed" for ratings of 9 or higher).`

const defaultRate = `Rate this Reddit post for short-video humor potential on a scale of 1-10.

POST DETAILS:
Title: {{.Title}}
Content: {{.Body}}
Subreddit: r/{{.Subreddit}}
Reddit Score: {{.Score}} upvotes

EVALUATION CRITERIA:
1. Humor quality: how funny or entertaining is this content?
2. Short-video appeal: would this engage a young scrolling audience?
3. TTS readability: how well would this work read aloud by a synthetic voice?
4. Viral potential: could this become shareable content?
5. Content safety: is this appropriate for all audiences?

REQUIREMENTS FOR HIGH SCORES:
- Clear, engaging narrative or punchline
- Relatable situations or universal humor
- Appropriate length for a 15-60 second narration
- No controversial, offensive, or inappropriate content
- Strong hook in the first few sentences
- Easy to understand when heard rather than read

AUDIENCE FOCUS: {{.AudienceFocus}}

The text will be read aloud, so penalize content that relies on visual
formatting, links, or written elements that do not translate to audio.`

// Default returns the built-in templates.
func Default() *Prompts {
	return &Prompts{
		Assessment: AssessmentPrompts{
			System: defaultSystem,
			Rate:   defaultRate,
		},
	}
}

// Load reads prompts.yaml from the working directory if it exists,
// filling any missing templates from the defaults.
func Load() (*Prompts, error) {
	p, err := LoadFrom(defaultPromptsPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}
	if p.Assessment.System == "" {
		p.Assessment.System = defaultSystem
	}
	if p.Assessment.Rate == "" {
		p.Assessment.Rate = defaultRate
	}
	return p, nil
}

func (p *Prompts) RenderRate(params RateParams) (string, error) {
	return render(p.Assessment.Rate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
