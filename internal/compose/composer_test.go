package compose

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wantW int
		wantH int
	}{
		{"vertical", "1080x1920", 1080, 1920},
		{"square", "720x720", 720, 720},
		{"malformed", "fullhd", 1080, 1920},
		{"non numeric", "axb", 1080, 1920},
		{"empty", "", 1080, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := parseResolution(tt.input)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("parseResolution(%q) = %dx%d, want %dx%d", tt.input, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBuildFilterIncludesScaleAndTitle(t *testing.T) {
	c := New("1080x1920", "modern", nil)
	filter := c.buildFilter("My Story", "")

	if !strings.Contains(filter, "scale=1080:1920") {
		t.Errorf("filter missing scale: %s", filter)
	}
	if !strings.Contains(filter, "crop=1080:1920") {
		t.Errorf("filter missing crop: %s", filter)
	}
	if !strings.Contains(filter, "drawtext=text='My Story'") {
		t.Errorf("filter missing title: %s", filter)
	}
	if !strings.Contains(filter, "amix=inputs=2") {
		t.Errorf("filter missing audio mix: %s", filter)
	}
}

func TestBuildFilterWithoutTitle(t *testing.T) {
	c := New("1080x1920", "modern", nil)
	filter := c.buildFilter("", "")

	if strings.Contains(filter, "drawtext") {
		t.Errorf("empty title should skip drawtext: %s", filter)
	}
}

func TestTitleFilterStyles(t *testing.T) {
	dynamic := New("1080x1920", "dynamic", nil).titleFilter("Hello", "")
	if !strings.Contains(dynamic, "fontcolor=yellow") {
		t.Errorf("dynamic style should use yellow text: %s", dynamic)
	}

	unknown := New("1080x1920", "vaporwave", nil).titleFilter("Hello", "")
	if !strings.Contains(unknown, "fontcolor=white") {
		t.Errorf("unknown style should fall back to modern: %s", unknown)
	}

	override := New("1080x1920", "modern", nil).titleFilter("Hello", "dynamic")
	if !strings.Contains(override, "fontcolor=yellow") {
		t.Errorf("request style should override composer default: %s", override)
	}
}

func TestTitleFilterTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("a", 200)
	filter := New("1080x1920", "modern", nil).titleFilter(long, "")

	if strings.Contains(filter, strings.Repeat("a", 100)) {
		t.Errorf("long title should be truncated: %s", filter)
	}
	if !strings.Contains(filter, "...") {
		t.Errorf("truncated title should end with ellipsis")
	}
}

func TestTitleFilterTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200)
	filter := New("1080x1920", "modern", nil).titleFilter(long, "")

	if !utf8.ValidString(filter) {
		t.Errorf("truncation produced invalid UTF-8: %s", filter)
	}
	if !strings.Contains(filter, "...") {
		t.Errorf("truncated title should end with ellipsis")
	}
}

func TestEscapeDrawText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain title", "plain title"},
		{"50% done", `50\% done`},
		{"it's here", `it\'s here`},
		{"a:b", `a\:b`},
	}

	for _, tt := range tests {
		if got := escapeDrawText(tt.input); got != tt.want {
			t.Errorf("escapeDrawText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildColorArgsUsesLavfiSource(t *testing.T) {
	c := New("1080x1920", "modern", nil)
	args := c.buildColorArgs(Request{
		Title:         "Hello",
		AudioPath:     "/tmp/a.mp3",
		AudioDuration: 30,
		OutputPath:    "/tmp/out.mp4",
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-f lavfi") {
		t.Errorf("args missing lavfi input: %s", joined)
	}
	if !strings.Contains(joined, "color=c=0x1a1a2e:s=1080x1920") {
		t.Errorf("args missing color source: %s", joined)
	}
}

func TestColorFilterMapsNarrationDirectly(t *testing.T) {
	c := New("1080x1920", "modern", nil)
	filter := c.colorFilter("Hello", "")

	if strings.Contains(filter, "amix") {
		t.Errorf("color source has no audio to mix: %s", filter)
	}
	if !strings.Contains(filter, "[1:a]anull[a]") {
		t.Errorf("filter should pass narration through: %s", filter)
	}
	if !strings.Contains(filter, "drawtext") {
		t.Errorf("filter missing title: %s", filter)
	}
}

func TestBuildArgs(t *testing.T) {
	c := New("1080x1920", "modern", nil)
	args := c.buildArgs("/clips/bg.mp4", 12.5, Request{
		AudioPath:     "/tmp/narration.mp3",
		AudioDuration: 30,
		Title:         "Hello",
		OutputPath:    "/tmp/out.mp4",
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-ss 12.50") {
		t.Errorf("args missing start time: %s", joined)
	}
	if !strings.Contains(joined, "-t 31.50") {
		t.Errorf("args missing duration with end buffer: %s", joined)
	}
	if !strings.Contains(joined, "-i /clips/bg.mp4") || !strings.Contains(joined, "-i /tmp/narration.mp3") {
		t.Errorf("args missing inputs: %s", joined)
	}
	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Errorf("output path must be last arg, got %s", args[len(args)-1])
	}
}

func TestRandomStartTime(t *testing.T) {
	if got := randomStartTime(10, 30); got != 0 {
		t.Errorf("short clip should start at 0, got %v", got)
	}

	for i := 0; i < 20; i++ {
		got := randomStartTime(120, 30)
		if got < 0 || got > 90 {
			t.Fatalf("start time %v outside [0, 90]", got)
		}
	}
}
