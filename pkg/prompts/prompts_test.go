package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRenders(t *testing.T) {
	p := Default()

	prompt, err := p.RenderRate(RateParams{
		Title:         "TIFU by testing",
		Body:          "The whole story.",
		Subreddit:     "tifu",
		Score:         1234,
		AudienceFocus: "Rate for broad appeal.",
	})
	if err != nil {
		t.Fatalf("RenderRate: %v", err)
	}

	for _, want := range []string{
		"TIFU by testing",
		"The whole story.",
		"r/tifu",
		"1234 upvotes",
		"Rate for broad appeal.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestLoadFromOverridesAndFills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := `
assessment:
  rate: "Custom rating of {{.Title}} for r/{{.Subreddit}}"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	prompt, err := p.RenderRate(RateParams{Title: "A Story", Subreddit: "tifu"})
	if err != nil {
		t.Fatalf("RenderRate: %v", err)
	}
	if prompt != "Custom rating of A Story for r/tifu" {
		t.Errorf("prompt = %q", prompt)
	}

	// The system prompt was not overridden and keeps its default.
	if p.Assessment.System != Default().Assessment.System {
		t.Error("missing templates should fall back to defaults")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	wd, _ := os.Getwd()
	defer func() { _ = os.Chdir(wd) }()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Assessment.Rate == "" || p.Assessment.System == "" {
		t.Error("defaults should be populated")
	}
}

func TestLoadFromRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
