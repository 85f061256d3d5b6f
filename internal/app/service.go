// Package app wires the pipeline stages together and drives a single
// post from Reddit listing to organized video.
package app

import (
	"context"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
	"github.com/adjosc/reddit-tiktok-creator/internal/compose"
	"github.com/adjosc/reddit-tiktok-creator/internal/narrate"
	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

type Fetcher interface {
	TopPosts(ctx context.Context, limit int) ([]reddit.Post, error)
}

// Assessor rates posts and drops those below minRating. A nil error
// guarantees at least one survivor, sorted best first.
type Assessor interface {
	Rate(ctx context.Context, posts []reddit.Post, minRating float64) ([]assess.Rated, error)
}

type Composer interface {
	Compose(ctx context.Context, req compose.Request) (*compose.Result, error)
}

type Organizer interface {
	Organize(req organize.OrganizeRequest) (*organize.Record, error)
}

type Service struct {
	cfg       *config.Config
	fetcher   Fetcher
	assessor  Assessor
	narrator  narrate.Provider
	composer  Composer
	organizer Organizer
}

type ServiceOptions struct {
	Config    *config.Config
	Fetcher   Fetcher
	Assessor  Assessor
	Narrator  narrate.Provider
	Composer  Composer
	Organizer Organizer
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:       opts.Config,
		fetcher:   opts.Fetcher,
		assessor:  opts.Assessor,
		narrator:  opts.Narrator,
		composer:  opts.Composer,
		organizer: opts.Organizer,
	}
}

func (s *Service) Config() *config.Config { return s.cfg }
