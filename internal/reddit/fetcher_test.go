package reddit

import (
	"context"
	"errors"
	"testing"
	"time"

	rd "github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testRedditConfig() config.RedditConfig {
	return config.RedditConfig{
		Subreddits:       []string{"tifu", "confession"},
		PostLimit:        20,
		TimeFilter:       "day",
		MinScore:         100,
		MinLength:        100,
		MaxLength:        1500,
		MaxAgeDays:       7,
		MinComments:      10,
		ExcludedKeywords: []string{"politics", "nsfw"},
	}
}

func goodPost(id string, score int) *rd.Post {
	body := "So this morning I managed to lock myself out of the house while " +
		"the pancakes were still on the stove, and my neighbor had to climb " +
		"through the kitchen window to save breakfast."
	return &rd.Post{
		ID:               id,
		Title:            "I locked myself out mid pancake",
		Body:             body,
		Score:            score,
		UpvoteRatio:      0.95,
		NumberOfComments: 42,
		SubredditName:    "tifu",
		Author:           "someone",
		Permalink:        "/r/tifu/comments/" + id,
		IsSelfPost:       true,
		Created:          &rd.Timestamp{Time: testNow.Add(-24 * time.Hour)},
	}
}

type fakeLister struct {
	bySubreddit map[string][]*rd.Post
	errs        map[string]error
	calls       []string
}

func (f *fakeLister) TopPosts(_ context.Context, subreddit string, _ *rd.ListPostOptions) ([]*rd.Post, *rd.Response, error) {
	f.calls = append(f.calls, subreddit)
	if err := f.errs[subreddit]; err != nil {
		return nil, nil, err
	}
	return f.bySubreddit[subreddit], nil, nil
}

func newTestFetcher(lister *fakeLister) *Fetcher {
	return &Fetcher{
		subreddits: lister,
		cfg:        testRedditConfig(),
		now:        func() time.Time { return testNow },
	}
}

func TestTopPostsSortsByScoreAndLimits(t *testing.T) {
	f := newTestFetcher(&fakeLister{
		bySubreddit: map[string][]*rd.Post{
			"tifu":       {goodPost("b", 900), goodPost("a", 150)},
			"confession": {goodPost("c", 400)},
		},
	})

	posts, err := f.TopPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].ID != "b" || posts[1].ID != "c" {
		t.Errorf("got order [%s %s], want [b c]", posts[0].ID, posts[1].ID)
	}
}

func TestTopPostsSkipsFailingSubreddit(t *testing.T) {
	f := newTestFetcher(&fakeLister{
		bySubreddit: map[string][]*rd.Post{
			"confession": {goodPost("c", 400)},
		},
		errs: map[string]error{"tifu": errors.New("rate limited")},
	})

	posts, err := f.TopPosts(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "c" {
		t.Errorf("got %v, want single post c", posts)
	}
}

func TestTopPostsErrorsWhenNothingSuitable(t *testing.T) {
	f := newTestFetcher(&fakeLister{})

	if _, err := f.TopPosts(context.Background(), 5); err == nil {
		t.Fatal("expected error when no posts found")
	}
}

func TestTopPostsHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(&fakeLister{})
	if _, err := f.TopPosts(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestSuitableFilters(t *testing.T) {
	f := newTestFetcher(&fakeLister{})

	tests := []struct {
		name   string
		mutate func(*rd.Post)
		want   bool
	}{
		{"good post", func(p *rd.Post) {}, true},
		{"link post", func(p *rd.Post) { p.IsSelfPost = false }, false},
		{"nsfw", func(p *rd.Post) { p.NSFW = true }, false},
		{"stickied", func(p *rd.Post) { p.Stickied = true }, false},
		{"removed body", func(p *rd.Post) { p.Body = "[removed]" }, false},
		{"deleted body", func(p *rd.Post) { p.Body = "[deleted]" }, false},
		{"empty body", func(p *rd.Post) { p.Body = "  " }, false},
		{"low score", func(p *rd.Post) { p.Score = 99 }, false},
		{"too short", func(p *rd.Post) { p.Body = "short"; p.Title = "hi" }, false},
		{"too long", func(p *rd.Post) {
			long := make([]byte, 2000)
			for i := range long {
				long[i] = 'a'
			}
			p.Body = string(long)
		}, false},
		{"excluded keyword", func(p *rd.Post) { p.Body = p.Body + " and then politics happened" }, false},
		{"excluded keyword in title", func(p *rd.Post) { p.Title = "NSFW story time" }, false},
		{"too old", func(p *rd.Post) { p.Created = &rd.Timestamp{Time: testNow.Add(-8 * 24 * time.Hour)} }, false},
		{"few comments", func(p *rd.Post) { p.NumberOfComments = 3 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goodPost("x", 500)
			tt.mutate(p)
			if got := f.suitable(p); got != tt.want {
				t.Errorf("suitable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertCleansAndStampsPost(t *testing.T) {
	f := newTestFetcher(&fakeLister{})

	raw := goodPost("x", 500)
	raw.Title = "**TIFU** by [clicking this](https://example.com)"

	post := f.convert(raw)
	if post.Title != "TIFU by clicking this" {
		t.Errorf("Title = %q, want markdown stripped", post.Title)
	}
	if post.Permalink != "https://reddit.com/r/tifu/comments/x" {
		t.Errorf("Permalink = %q", post.Permalink)
	}
	if !post.FetchedAt.Equal(testNow) {
		t.Errorf("FetchedAt = %v, want %v", post.FetchedAt, testNow)
	}
}

func TestCleanForTTS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"link", "[click here](https://example.com) now", "click here now"},
		{"bold and italic", "**very** *funny* story", "very funny story"},
		{"strikethrough", "~~not~~ funny", "not funny"},
		{"header", "# My Story\nIt begins", "My Story It begins"},
		{"tldr semicolon", "TL;DR I fell over", "Too long, didn't read I fell over"},
		{"tldr plain", "tldr it was bad", "Too long, didn't read it was bad"},
		{"aita", "AITA for leaving?", "Am I the asshole for leaving?"},
		{"imho before imo", "IMHO this is fine", "In my humble opinion this is fine"},
		{"edit marker", "EDIT: he called back", "Edit: he called back"},
		{"unsafe chars", "50% off @ the store!", "50 off the store!"},
		{"whitespace collapse", "too    many\n\nspaces", "too many spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanForTTS(tt.input); got != tt.want {
				t.Errorf("CleanForTTS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
