package config

import (
	"fmt"
	"strconv"
	"strings"
)

// HourRange is a [Start, End) window of local hours. Start > End means
// the window spans midnight, e.g. "23-6".
type HourRange struct {
	Start int
	End   int
}

// Contains reports whether the given local hour falls inside the range.
func (r HourRange) Contains(hour int) bool {
	if r.Start > r.End {
		return hour >= r.Start || hour < r.End
	}
	return hour >= r.Start && hour < r.End
}

// ParseHourRange parses a single "23-6" style window.
func ParseHourRange(s string) (HourRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return HourRange{}, fmt.Errorf("malformed hour range %q, want START-END", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return HourRange{}, fmt.Errorf("malformed hour range %q: %w", s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return HourRange{}, fmt.Errorf("malformed hour range %q: %w", s, err)
	}
	if start < 0 || start > 23 || end < 0 || end > 24 {
		return HourRange{}, fmt.Errorf("hour range %q out of bounds", s)
	}
	return HourRange{Start: start, End: end}, nil
}

// ParseHourRanges parses a comma-separated list like "12-14,19-21".
func ParseHourRanges(s string) ([]HourRange, error) {
	var ranges []HourRange
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseHourRange(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// QuietWindow returns the parsed quiet-hours window.
func (s ScheduleConfig) QuietWindow() (HourRange, error) {
	return ParseHourRange(s.QuietHours)
}

// PeakWindows returns the parsed peak-hours windows.
func (s ScheduleConfig) PeakWindows() ([]HourRange, error) {
	return ParseHourRanges(s.PeakHours)
}

var validTimeFilters = map[string]bool{
	"hour": true, "day": true, "week": true, "month": true, "year": true, "all": true,
}

var validVideoStyles = map[string]bool{
	"modern": true, "minimal": true, "dynamic": true, "story": true,
}

var validScriptStyles = map[string]bool{
	"engaging": true, "dramatic": true, "casual": true, "story": true,
}

// Validate returns every configuration problem that should block
// startup, missing credentials and window syntax included.
func (c *Config) Validate() []error {
	var errs []error

	if c.RedditClientID == "" {
		errs = append(errs, fmt.Errorf("REDDIT_CLIENT_ID is not set"))
	}
	if c.RedditClientSecret == "" {
		errs = append(errs, fmt.Errorf("REDDIT_CLIENT_SECRET is not set"))
	}
	if c.GroqAPIKey == "" {
		errs = append(errs, fmt.Errorf("GROQ_API_KEY is not set"))
	}

	if !validTimeFilters[c.Reddit.TimeFilter] {
		errs = append(errs, fmt.Errorf("invalid reddit time filter %q", c.Reddit.TimeFilter))
	}
	if c.Reddit.MinLength >= c.Reddit.MaxLength {
		errs = append(errs, fmt.Errorf("min content length %d must be below max %d",
			c.Reddit.MinLength, c.Reddit.MaxLength))
	}
	if !validVideoStyles[c.Video.Style] {
		errs = append(errs, fmt.Errorf("invalid video style %q", c.Video.Style))
	}
	if !validScriptStyles[c.TTS.ScriptStyle] {
		errs = append(errs, fmt.Errorf("invalid script style %q", c.TTS.ScriptStyle))
	}
	if c.Content.MinHumorRating < 1 || c.Content.MinHumorRating > 10 {
		errs = append(errs, fmt.Errorf("min humor rating %.1f outside 1-10", c.Content.MinHumorRating))
	}
	if c.TTS.SpeechSpeed < 0.5 || c.TTS.SpeechSpeed > 2.0 {
		errs = append(errs, fmt.Errorf("speech speed %.2f outside 0.5-2.0", c.TTS.SpeechSpeed))
	}

	if _, err := c.Schedule.QuietWindow(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Schedule.PeakWindows(); err != nil {
		errs = append(errs, err)
	}
	if c.Schedule.MaxVideosPerDay < 1 {
		errs = append(errs, fmt.Errorf("max videos per day must be at least 1"))
	}

	return errs
}
