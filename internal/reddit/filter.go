package reddit

import (
	"strings"
	"time"

	rd "github.com/vartanbeno/go-reddit/v2/reddit"
)

// suitable reports whether a raw post can become a narrated video:
// text-only, present, scored and commented enough, sized for TTS,
// recent, and free of excluded keywords.
func (f *Fetcher) suitable(p *rd.Post) bool {
	if !p.IsSelfPost || p.NSFW || p.Stickied {
		return false
	}

	body := strings.TrimSpace(p.Body)
	if body == "" || body == "[removed]" || body == "[deleted]" {
		return false
	}

	if p.Score < f.cfg.MinScore {
		return false
	}

	total := len(p.Title) + len(body)
	if total < f.cfg.MinLength || total > f.cfg.MaxLength {
		return false
	}

	if f.containsExcluded(p.Title + " " + body) {
		return false
	}

	if p.Created != nil {
		age := f.now().Sub(p.Created.Time)
		if age > time.Duration(f.cfg.MaxAgeDays)*24*time.Hour {
			return false
		}
	}

	if p.NumberOfComments < f.cfg.MinComments {
		return false
	}

	return true
}

func (f *Fetcher) containsExcluded(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range f.cfg.ExcludedKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
