package narrate

import (
	"strings"

	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
)

// voices maps style names to ElevenLabs voice IDs.
var voices = map[string]Voice{
	"funny_male":   {ID: "TxGEqnHWrfWFTfGW9XjX", Name: "funny_male"},
	"funny_female": {ID: "EXAVITQu4vr4xnSDxMaL", Name: "funny_female"},
	"story_male":   {ID: "VR6AewLTigWG4xSOukaG", Name: "story_male"},
	"story_female": {ID: "21m00Tcm4TlvDq8ikWAM", Name: "story_female"},
	"dramatic":     {ID: "onwK4e9ZLuTAKqWW03F9", Name: "dramatic"},
	"casual":       {ID: "pNInz6obpgDQGcFmaJgB", Name: "casual"},
}

// VoiceNamed resolves a style name, falling back to casual.
func VoiceNamed(name string) Voice {
	if v, ok := voices[name]; ok {
		return v
	}
	return voices["casual"]
}

// VoiceForPost suggests a voice style from the post's subreddit and
// content. Used when the voice style is "auto" or unset.
func VoiceForPost(post reddit.Post) Voice {
	title := strings.ToLower(post.Title)
	body := strings.ToLower(post.Body)
	combined := title + " " + body

	switch strings.ToLower(post.Subreddit) {
	case "tifu", "confession":
		if containsAny(combined, "embarrass", "awkward", "cringe") {
			return voices["funny_male"]
		}
		return voices["story_male"]
	case "amitheasshole", "relationship_advice":
		return voices["dramatic"]
	case "wholesome", "wholesomememes", "mademesmile":
		return voices["funny_female"]
	}

	if containsAny(combined, "story", "happened", "experience") {
		return voices["story_female"]
	}
	return voices["casual"]
}
