package reddit

import (
	"regexp"
	"strings"
)

var (
	markdownLink   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	markdownBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	markdownItalic = regexp.MustCompile(`\*([^*]+)\*`)
	markdownStrike = regexp.MustCompile(`~~([^~]+)~~`)
	markdownHeader = regexp.MustCompile(`(?m)^#+\s+`)
	ttsUnsafe      = regexp.MustCompile(`[^\w\s.,!?;:'"()-]`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// abbreviations maps Reddit shorthand to speech, longest keys first so
// TL;DR is expanded before TLDR.
var abbreviations = []struct {
	pattern *regexp.Regexp
	speech  string
}{
	{regexp.MustCompile(`(?i)\bTL;DR\b`), "Too long, didn't read"},
	{regexp.MustCompile(`(?i)\bTLDR\b`), "Too long, didn't read"},
	{regexp.MustCompile(`(?i)\bIMHO\b`), "In my humble opinion"},
	{regexp.MustCompile(`(?i)\bIMO\b`), "In my opinion"},
	{regexp.MustCompile(`(?i)\bBTW\b`), "By the way"},
	{regexp.MustCompile(`(?i)\bFYI\b`), "For your information"},
	{regexp.MustCompile(`(?i)\bWIBTA\b`), "Would I be the asshole"},
	{regexp.MustCompile(`(?i)\bAITA\b`), "Am I the asshole"},
	{regexp.MustCompile(`(?i)\bNTA\b`), "Not the asshole"},
	{regexp.MustCompile(`(?i)\bYTA\b`), "You are the asshole"},
	{regexp.MustCompile(`(?i)\bEDIT:`), "Edit:"},
	{regexp.MustCompile(`(?i)\bUPDATE:`), "Update:"},
}

// CleanForTTS strips Reddit markdown, drops characters that trip up
// speech synthesis, expands common abbreviations, and collapses
// whitespace.
func CleanForTTS(text string) string {
	if text == "" {
		return ""
	}

	text = markdownLink.ReplaceAllString(text, "$1")
	text = markdownBold.ReplaceAllString(text, "$1")
	text = markdownItalic.ReplaceAllString(text, "$1")
	text = markdownStrike.ReplaceAllString(text, "$1")
	text = markdownHeader.ReplaceAllString(text, "")

	text = ttsUnsafe.ReplaceAllString(text, " ")

	for _, abbr := range abbreviations {
		text = abbr.pattern.ReplaceAllString(text, abbr.speech)
	}

	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
