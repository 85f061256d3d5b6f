// Package reddit fetches candidate posts and prepares their text for
// narration.
package reddit

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	rd "github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

// Post is a cleaned Reddit post ready for assessment and narration.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"selftext"`
	Subreddit   string    `json:"subreddit"`
	Author      string    `json:"author"`
	Permalink   string    `json:"url"`
	Score       int       `json:"score"`
	UpvoteRatio float32   `json:"upvote_ratio"`
	NumComments int       `json:"num_comments"`
	Created     time.Time `json:"created_utc"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// TotalLength is the combined character count used by the length filter.
func (p Post) TotalLength() int {
	return len(p.Title) + len(p.Body)
}

// lister is the slice of the go-reddit subreddit service the fetcher
// needs, kept narrow so tests can fake it.
type lister interface {
	TopPosts(ctx context.Context, subreddit string, opts *rd.ListPostOptions) ([]*rd.Post, *rd.Response, error)
}

// Fetcher pulls posts from configured subreddits, filters out
// unsuitable ones, and cleans the survivors for TTS.
type Fetcher struct {
	subreddits lister
	cfg        config.RedditConfig
	now        func() time.Time
}

// NewFetcher builds a Fetcher backed by the Reddit API. Script-app
// credentials are used when present, otherwise the read-only client.
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	var client *rd.Client
	var err error

	if cfg.RedditUsername != "" && cfg.RedditPassword != "" {
		client, err = rd.NewClient(rd.Credentials{
			ID:       cfg.RedditClientID,
			Secret:   cfg.RedditClientSecret,
			Username: cfg.RedditUsername,
			Password: cfg.RedditPassword,
		}, rd.WithUserAgent(cfg.RedditUserAgent))
	} else {
		client, err = rd.NewReadonlyClient(rd.WithUserAgent(cfg.RedditUserAgent))
	}
	if err != nil {
		return nil, fmt.Errorf("create reddit client: %w", err)
	}

	return &Fetcher{
		subreddits: client.Subreddit,
		cfg:        cfg.Reddit,
		now:        time.Now,
	}, nil
}

// TopPosts fetches, filters, and cleans posts from every configured
// subreddit, returning at most limit posts sorted by score descending.
// A subreddit that fails to fetch is logged and skipped.
func (f *Fetcher) TopPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = f.cfg.PostLimit
	}

	perSubreddit := limit / len(f.cfg.Subreddits)
	if perSubreddit < 1 {
		perSubreddit = 1
	}

	var all []Post
	for _, name := range f.cfg.Subreddits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		posts, err := f.fromSubreddit(ctx, name, perSubreddit)
		if err != nil {
			slog.Warn("Failed to fetch subreddit", "subreddit", name, "error", err)
			continue
		}
		slog.Info("Fetched posts", "subreddit", name, "count", len(posts))
		all = append(all, posts...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no suitable posts found in %d subreddits", len(f.cfg.Subreddits))
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *Fetcher) fromSubreddit(ctx context.Context, name string, limit int) ([]Post, error) {
	// Fetch extra to leave room for filtering.
	raw, _, err := f.subreddits.TopPosts(ctx, name, &rd.ListPostOptions{
		ListOptions: rd.ListOptions{Limit: limit * 3},
		Time:        f.cfg.TimeFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("list top posts: %w", err)
	}

	posts := make([]Post, 0, limit)
	for _, p := range raw {
		if !f.suitable(p) {
			continue
		}
		posts = append(posts, f.convert(p))
		if len(posts) >= limit {
			break
		}
	}
	return posts, nil
}

func (f *Fetcher) convert(p *rd.Post) Post {
	var created time.Time
	if p.Created != nil {
		created = p.Created.Time
	}
	return Post{
		ID:          p.ID,
		Title:       CleanForTTS(p.Title),
		Body:        CleanForTTS(p.Body),
		Subreddit:   p.SubredditName,
		Author:      p.Author,
		Permalink:   "https://reddit.com" + p.Permalink,
		Score:       p.Score,
		UpvoteRatio: p.UpvoteRatio,
		NumComments: p.NumberOfComments,
		Created:     created,
		FetchedAt:   f.now().UTC(),
	}
}
