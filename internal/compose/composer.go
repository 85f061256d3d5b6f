// Package compose renders vertical videos with ffmpeg: a looping
// background clip, the narration track, and a title card.
package compose

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os/exec"
	"strconv"
	"strings"

	"github.com/adjosc/reddit-tiktok-creator/internal/storage"
)

const (
	defaultFFmpegPath  = "ffmpeg"
	defaultFFprobePath = "ffprobe"
	videoEndBuffer     = 1.5
	titleDisplaySecs   = 4.0
	maxTitleChars      = 80
)

// Composer renders one video per request.
type Composer struct {
	ffmpegPath  string
	ffprobePath string
	width       int
	height      int
	style       string
	clips       storage.ClipSource
}

// Request describes one composition. Style overrides the composer's
// default look when set.
type Request struct {
	AudioPath     string
	AudioDuration float64
	Title         string
	OutputPath    string
	Style         string
}

// Result reports where the video landed and how long it runs.
type Result struct {
	OutputPath string
	Duration   float64
	Background string
}

func New(resolution, style string, clips storage.ClipSource) *Composer {
	width, height := parseResolution(resolution)
	return &Composer{
		ffmpegPath:  defaultFFmpegPath,
		ffprobePath: defaultFFprobePath,
		width:       width,
		height:      height,
		style:       style,
		clips:       clips,
	}
}

func parseResolution(res string) (int, int) {
	parts := strings.Split(res, "x")
	if len(parts) != 2 {
		return 1080, 1920
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 1080, 1920
	}
	return w, h
}

// Compose renders the request to OutputPath.
func (c *Composer) Compose(ctx context.Context, req Request) (*Result, error) {
	var args []string
	background, err := c.clips.RandomClip(ctx)
	if err != nil {
		slog.Warn("No background clip available, using a solid color", "error", err)
		background = ""
		args = c.buildColorArgs(req)
	} else {
		clipDuration, err := c.probeDuration(ctx, background)
		if err != nil {
			return nil, fmt.Errorf("probe background clip: %w", err)
		}
		startTime := randomStartTime(clipDuration, req.AudioDuration+videoEndBuffer)
		args = c.buildArgs(background, startTime, req)
	}

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}

	duration, err := c.probeDuration(ctx, req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("probe output: %w", err)
	}

	return &Result{
		OutputPath: req.OutputPath,
		Duration:   duration,
		Background: background,
	}, nil
}

func (c *Composer) buildArgs(background string, startTime float64, req Request) []string {
	videoDuration := req.AudioDuration + videoEndBuffer

	return []string{
		"-y",
		"-ss", fmt.Sprintf("%.2f", startTime),
		"-t", fmt.Sprintf("%.2f", videoDuration),
		"-stream_loop", "-1",
		"-i", background,
		"-i", req.AudioPath,
		"-filter_complex", c.buildFilter(req.Title, req.Style),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-ar", "44100",
		"-preset", "fast",
		"-shortest",
		req.OutputPath,
	}
}

// styleColors back the frame when no clip source can serve a video.
var styleColors = map[string]string{
	"modern":  "0x1a1a2e",
	"minimal": "0x2d2d2d",
	"dynamic": "0x16213e",
	"story":   "0x0f3460",
}

// buildColorArgs renders on a generated solid color source instead of
// a background clip. The color source carries no audio stream, so the
// narration maps straight through.
func (c *Composer) buildColorArgs(req Request) []string {
	style := req.Style
	if style == "" {
		style = c.style
	}
	color, ok := styleColors[style]
	if !ok {
		color = styleColors["modern"]
	}

	videoDuration := req.AudioDuration + videoEndBuffer
	source := fmt.Sprintf("color=c=%s:s=%dx%d:d=%.2f:r=30", color, c.width, c.height, videoDuration)

	return []string{
		"-y",
		"-f", "lavfi",
		"-i", source,
		"-i", req.AudioPath,
		"-filter_complex", c.colorFilter(req.Title, req.Style),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-ar", "44100",
		"-preset", "fast",
		"-shortest",
		req.OutputPath,
	}
}

func (c *Composer) colorFilter(title, style string) string {
	video := "[0:v]null"
	if title != "" {
		video = "[0:v]" + c.titleFilter(title, style)
	}
	video += "[v]"

	return video + ";[1:a]anull[a]"
}

// buildFilter scales and crops the background to the target frame,
// draws the title card, and mixes muted background audio under the
// narration.
func (c *Composer) buildFilter(title, style string) string {
	scale := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		c.width, c.height, c.width, c.height)

	video := fmt.Sprintf("[0:v]%s", scale)
	if title != "" {
		video += "," + c.titleFilter(title, style)
	}
	video += "[v]"

	audio := "[0:a]volume=0.1[bga];[1:a]volume=1.0[voice];[bga][voice]amix=inputs=2:duration=longest[a]"

	return video + ";" + audio
}

// styleLooks maps video styles to title card treatments.
var styleLooks = map[string]struct {
	fontColor string
	boxColor  string
	y         string
}{
	"modern":  {"white", "black@0.6", "h/6"},
	"minimal": {"white", "black@0.4", "h/8"},
	"dynamic": {"yellow", "black@0.7", "h/5"},
	"story":   {"white", "#1a1a2e@0.8", "h/4"},
}

func (c *Composer) titleFilter(title, style string) string {
	if style == "" {
		style = c.style
	}
	look, ok := styleLooks[style]
	if !ok {
		look = styleLooks["modern"]
	}

	// Truncate on rune boundaries so drawtext never sees broken UTF-8.
	if runes := []rune(title); len(runes) > maxTitleChars {
		title = string(runes[:maxTitleChars-3]) + "..."
	}

	return fmt.Sprintf(
		"drawtext=text='%s':fontcolor=%s:fontsize=%d:box=1:boxcolor=%s:boxborderw=20:"+
			"x=(w-text_w)/2:y=%s:enable='between(t,0,%.1f)'",
		escapeDrawText(title), look.fontColor, c.width/18, look.boxColor, look.y, titleDisplaySecs,
	)
}

// escapeDrawText escapes characters that break ffmpeg drawtext values.
func escapeDrawText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(s)
}

func (c *Composer) probeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	cmd := exec.CommandContext(ctx, c.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var dur float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(output)), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return dur, nil
}

func randomStartTime(clipDuration, neededDuration float64) float64 {
	if clipDuration <= neededDuration {
		return 0
	}
	return rand.Float64() * (clipDuration - neededDuration)
}
