package config

import "fmt"

// PresetNames lists the built-in preset identifiers in display order.
var PresetNames = []string{"high_quality", "high_volume", "family_friendly"}

// ApplyPreset overwrites the tunable parts of cfg with one of the
// built-in presets. Credentials and output paths are left alone.
func ApplyPreset(cfg *Config, name string) error {
	switch name {
	case "high_quality":
		cfg.Reddit.Subreddits = []string{"tifu", "confession", "wholesomememes"}
		cfg.Reddit.PostLimit = 10
		cfg.Reddit.MinScore = 500
		cfg.Reddit.TimeFilter = "week"
		cfg.Content.MinHumorRating = 8.5
		cfg.Content.TargetAudience = "quality_focused"
		cfg.TTS.ScriptStyle = "dramatic"
		cfg.Video.Style = "dynamic"
	case "high_volume":
		cfg.Reddit.Subreddits = []string{"funny", "memes", "tifu", "askreddit", "showerthoughts"}
		cfg.Reddit.PostLimit = 30
		cfg.Reddit.MinScore = 100
		cfg.Reddit.TimeFilter = "day"
		cfg.Content.MinHumorRating = 6.5
		cfg.Content.TargetAudience = "broad"
		cfg.TTS.ScriptStyle = "casual"
		cfg.Video.Style = "minimal"
	case "family_friendly":
		cfg.Reddit.Subreddits = []string{"wholesomememes", "mademesmile", "aww"}
		cfg.Reddit.PostLimit = 15
		cfg.Reddit.MinScore = 200
		cfg.Reddit.ExcludedKeywords = []string{
			"nsfw", "politics", "death", "violence", "alcohol", "drugs",
		}
		cfg.Content.MinHumorRating = 7.0
		cfg.Content.TargetAudience = "family"
		cfg.Content.SafetyLevel = "strict"
		cfg.TTS.ScriptStyle = "story"
		cfg.Video.Style = "story"
	default:
		return fmt.Errorf("unknown preset %q", name)
	}
	return nil
}
