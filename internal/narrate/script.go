package narrate

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
)

const maxScriptChars = 1000

// intros by subreddit then style. Subreddits without an entry fall
// back to default, styles without an entry fall back to engaging.
var intros = map[string]map[string][]string{
	"tifu": {
		"engaging": {
			"Someone just shared the most embarrassing story on Reddit!",
			"This person really messed up, and you won't believe what happened!",
			"Here's a story that will make you feel better about your worst day!",
		},
		"dramatic": {
			"A tale of epic failure has emerged from Reddit...",
			"One person's mistake changed everything...",
			"What started as a normal day became a disaster...",
		},
		"casual": {
			"So this person on Reddit had quite the day...",
			"Someone shared their epic fail story...",
			"Here's what happened when everything went wrong...",
		},
	},
	"amitheasshole": {
		"engaging": {
			"Someone's asking Reddit to judge their situation!",
			"This moral dilemma has Reddit divided!",
			"You be the judge of this dramatic story!",
		},
		"dramatic": {
			"A moral crisis has divided the internet...",
			"One decision sparked a family crisis...",
			"Justice hangs in the balance...",
		},
	},
	"confession": {
		"engaging": {
			"Someone just shared their biggest secret!",
			"This confession will blow your mind!",
			"Reddit user finally tells the truth!",
		},
		"dramatic": {
			"A secret has been revealed that changes everything...",
			"Years of hiding the truth end today...",
			"One confession shattered their world...",
		},
	},
	"default": {
		"engaging": {
			"You won't believe what happened on Reddit today!",
			"This Reddit story is absolutely wild!",
			"Someone just shared the craziest experience!",
			"This story from Reddit will amaze you!",
		},
		"dramatic": {
			"A story has emerged that will leave you speechless...",
			"What happened next changed everything...",
			"One moment changed their life forever...",
		},
		"casual": {
			"So someone on Reddit shared this story...",
			"Here's what happened to this Reddit user...",
			"Someone had quite the experience...",
		},
	},
}

var endings = []string{
	"What would you have done?",
	"Let me know what you think in the comments!",
	"Would you make the same choice?",
	"Share your thoughts below!",
	"What's your take on this?",
}

var (
	titlePrefix   = regexp.MustCompile(`(?i)^(TIFU|AITA|LPT|PSA|UPDATE):\s*`)
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	sentenceEnd   = regexp.MustCompile(`([.!?])\s+`)
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	andConnector  = regexp.MustCompile(`\bAnd\b`)
	spaceCollapse = regexp.MustCompile(`\s+`)
)

// BuildScript assembles a narration script for a post in the given
// style. Story scripts skip the intro, everything else opens with one.
func BuildScript(post reddit.Post, style string) string {
	hook := buildHook(post.Title)
	body := formatBody(post.Body, style)

	var script string
	if style == "story" {
		script = hook + " " + body
	} else {
		script = pickIntro(post.Subreddit, style) + " " + hook + " " + body
	}

	script = optimizeForSpeech(script)
	return capLength(script, maxScriptChars)
}

func pickIntro(subreddit, style string) string {
	bySub, ok := intros[strings.ToLower(subreddit)]
	if !ok {
		bySub = intros["default"]
	}
	options, ok := bySub[style]
	if !ok || len(options) == 0 {
		options = bySub["engaging"]
	}
	if len(options) == 0 {
		options = intros["default"]["engaging"]
	}
	return options[rand.Intn(len(options))]
}

func buildHook(title string) string {
	title = titlePrefix.ReplaceAllString(title, "")
	title = strings.TrimSpace(parenthetical.ReplaceAllString(title, " "))

	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, "accidentally", "mistake", "wrong", "oops"):
		return "Get this: " + title + "!"
	case containsAny(lower, "secret", "confession", "never told"):
		return "Here's the secret: " + title + "."
	case strings.Contains(title, "?"):
		return "They asked: " + title
	default:
		return title + "."
	}
}

func formatBody(body, style string) string {
	if len(body) < 20 {
		return "Check out the full story to see what happened next!"
	}

	var paragraphs []string
	for _, p := range strings.Split(body, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	switch style {
	case "dramatic":
		if len(paragraphs) > 3 {
			paragraphs = paragraphs[:3]
		}
		for i, p := range paragraphs {
			paragraphs[i] = strings.ReplaceAll(p, ". ", ". ... ")
		}
		return strings.Join(paragraphs, " ")
	case "story":
		if len(paragraphs) > 4 {
			paragraphs = paragraphs[:4]
		}
		joined := strings.Join(paragraphs, " ")
		return andConnector.ReplaceAllString(joined, "Then")
	default:
		if len(paragraphs) > 3 {
			paragraphs = paragraphs[:3]
		}
		return strings.Join(paragraphs, " ")
	}
}

// speechReplacements expands symbols and chat shorthand that trip up
// synthesized voices.
var speechReplacements = []struct {
	pattern *regexp.Regexp
	speech  string
}{
	{regexp.MustCompile(`&`), " and "},
	{regexp.MustCompile(`%`), " percent "},
	{regexp.MustCompile(`@`), " at "},
	{regexp.MustCompile(`#`), " hashtag "},
	{regexp.MustCompile(`\$`), " dollars "},
	{regexp.MustCompile(`\+`), " plus "},
	{regexp.MustCompile(`(?i)\blol\b`), "laugh out loud"},
	{regexp.MustCompile(`(?i)\bomg\b`), "oh my god"},
	{regexp.MustCompile(`(?i)\bwtf\b`), "what the heck"},
	{regexp.MustCompile(`(?i)\btbh\b`), "to be honest"},
	{regexp.MustCompile(`(?i)\brn\b`), "right now"},
	{regexp.MustCompile(`(?i)\bbf\b`), "boyfriend"},
	{regexp.MustCompile(`(?i)\bgf\b`), "girlfriend"},
	{regexp.MustCompile(`(?i)\bmil\b`), "mother in law"},
	{regexp.MustCompile(`(?i)\bfil\b`), "father in law"},
	{regexp.MustCompile(`(?i)\betc\.`), "and so on"},
	{regexp.MustCompile(`(?i)\bi\.e\.`), "that is"},
	{regexp.MustCompile(`(?i)\be\.g\.`), "for example"},
	{regexp.MustCompile(`(?i)\bvs\.`), "versus"},
}

func optimizeForSpeech(script string) string {
	for _, r := range speechReplacements {
		script = r.pattern.ReplaceAllString(script, r.speech)
	}

	script = spaceCollapse.ReplaceAllString(script, " ")
	// Pauses between sentences.
	script = sentenceEnd.ReplaceAllString(script, "$1 ... ")
	return strings.TrimSpace(script)
}

// capLength truncates at a sentence boundary and appends an engagement
// prompt, keeping scripts inside a 15-60 second narration.
func capLength(script string, maxChars int) string {
	if len(script) <= maxChars {
		return script
	}

	sentences := sentenceSplit.Split(script, -1)
	var truncated strings.Builder
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if truncated.Len()+len(sentence)+2 > maxChars-50 {
			break
		}
		truncated.WriteString(sentence)
		truncated.WriteString(". ")
	}

	return truncated.String() + endings[rand.Intn(len(endings))]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
