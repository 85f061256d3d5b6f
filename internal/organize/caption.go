package organize

import (
	"fmt"
	"math/rand"
	"strings"
)

var captionTemplates = map[string][]string{
	"tifu": {
		"This person really messed up #%s",
		"When everything goes wrong at once #%s",
		"Epic fail story incoming! #%s",
	},
	"amitheasshole": {
		"You be the judge! #%s",
		"Drama alert! Who's right here? #%s",
		"This situation is wild! #%s",
	},
	"confession": {
		"Finally telling the truth #%s",
		"Secret revealed! #%s",
		"They couldn't keep this secret anymore #%s",
	},
	"funny": {
		"This had me dying #%s",
		"Comedy gold right here! #%s",
		"You won't believe this! #%s",
	},
}

var defaultCaptions = []string{
	"This Reddit story is wild! #%s",
	"You have to hear this! #%s",
	"Reddit never disappoints! #%s",
}

var baseHashtags = []string{"reddit", "story", "viral", "foryou", "fyp"}

var subredditHashtags = map[string][]string{
	"tifu":          {"tifu", "fail", "embarrassing", "mistakes", "oops"},
	"amitheasshole": {"aita", "drama", "relationships", "family", "conflict"},
	"confession":    {"confession", "secret", "truth", "reveal", "anonymous"},
	"funny":         {"funny", "comedy", "humor", "laughing", "hilarious"},
	"wholesome":     {"wholesome", "heartwarming", "positive", "sweet", "love"},
	"memes":         {"memes", "relatable", "mood", "facts", "same"},
	"askreddit":     {"askreddit", "questions", "answers", "thoughts", "opinions"},
}

var contentHashtags = []struct {
	tag      string
	keywords []string
}{
	{"relationship", []string{"dating", "love", "relationships", "couple"}},
	{"work", []string{"work", "job", "boss", "office", "career"}},
	{"family", []string{"family", "parents", "siblings", "relatives"}},
	{"school", []string{"school", "college", "university", "student", "teacher"}},
	{"food", []string{"food", "cooking", "restaurant", "eating"}},
	{"travel", []string{"travel", "vacation", "trip", "airport", "hotel"}},
	{"technology", []string{"phone", "computer", "internet", "app", "tech"}},
	{"pets", []string{"dog", "cat", "pet", "animal"}},
}

const maxHashtags = 15

func generateCaption(post PostInfo) string {
	templates, ok := captionTemplates[strings.ToLower(post.Subreddit)]
	if !ok {
		templates = defaultCaptions
	}

	caption := fmt.Sprintf(templates[rand.Intn(len(templates))], post.Subreddit)
	if len(post.Title) < 60 {
		caption = fmt.Sprintf("%q %s", post.Title, caption)
	}
	return caption + " Follow for more Reddit stories!"
}

func generateHashtags(post PostInfo, body string) []string {
	tags := make([]string, 0, maxHashtags)
	tags = append(tags, baseHashtags...)
	tags = append(tags, subredditHashtags[strings.ToLower(post.Subreddit)]...)

	text := strings.ToLower(post.Title + " " + body)
	for _, ch := range contentHashtags {
		for _, keyword := range ch.keywords {
			if strings.Contains(text, keyword) {
				tags = append(tags, ch.tag)
				break
			}
		}
	}

	seen := make(map[string]bool, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}

	if len(unique) > maxHashtags {
		unique = unique[:maxHashtags]
	}
	return unique
}

func generateDescription(post PostInfo) string {
	title := post.Title
	if len(title) > 100 {
		title = title[:100] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reddit Story: %s\n\n", title)
	fmt.Fprintf(&b, "From r/%s with %d upvotes\n\n", post.Subreddit, post.Score)
	b.WriteString("What would you do in this situation? Let me know in the comments!\n\n")
	b.WriteString("#RedditStories #Viral #Story #Reddit")
	return b.String()
}

func determineAudiences(post PostInfo, body string) []string {
	var audiences []string
	text := strings.ToLower(post.Title + " " + body)

	if containsAny(text, "school", "college", "university", "teen") {
		audiences = append(audiences, "teens_young_adults")
	}
	if containsAny(text, "work", "job", "boss", "career", "office") {
		audiences = append(audiences, "working_professionals")
	}
	if containsAny(text, "parent", "family", "child", "kid") {
		audiences = append(audiences, "parents_families")
	}

	switch strings.ToLower(post.Subreddit) {
	case "tifu", "confession":
		audiences = append(audiences, "story_lovers")
	case "amitheasshole", "relationship_advice":
		audiences = append(audiences, "drama_enthusiasts")
	case "funny", "memes":
		audiences = append(audiences, "comedy_fans")
	}

	if len(audiences) == 0 {
		audiences = []string{"general_entertainment", "reddit_users"}
	}
	return audiences
}

var categoryBySubreddit = map[string]string{
	"tifu":          "embarrassing_stories",
	"amitheasshole": "moral_dilemmas",
	"confession":    "personal_confessions",
	"funny":         "humor_comedy",
	"wholesome":     "positive_content",
	"memes":         "meme_culture",
	"askreddit":     "q_and_a",
}

func categorize(post PostInfo) string {
	category, ok := categoryBySubreddit[strings.ToLower(post.Subreddit)]
	if !ok {
		category = "general_stories"
	}

	title := strings.ToLower(post.Title)
	switch {
	case containsAny(title, "relationship", "dating", "boyfriend", "girlfriend"):
		return category + "_relationship"
	case containsAny(title, "work", "job", "boss"):
		return category + "_workplace"
	case containsAny(title, "family", "parent", "sibling"):
		return category + "_family"
	}
	return category
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
