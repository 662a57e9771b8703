package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/brocat-app/brocat/internal/client/api"
	"github.com/brocat-app/brocat/internal/client/models"
	catalogrepo "github.com/brocat-app/brocat/internal/client/repositories/catalog"
	"github.com/brocat-app/brocat/internal/common"
	"github.com/brocat-app/brocat/internal/logging"
)

// Feed is the slice of the backend client the catalog service needs.
type Feed interface {
	FetchRows(ctx context.Context, req api.RowsRequest) ([]models.RawRow, error)
	AbsMediaURL(url string) string
}

// Options tunes the catalog service.
type Options struct {
	// Timeout bounds one feed request. Catalog screens need to settle
	// quickly, so this is shorter than the general request timeout.
	Timeout time.Duration
	// MaxRetries is how many times a failed fetch is retried with
	// exponential backoff before falling back to the cache.
	MaxRetries uint64
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 6 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = 2
	}
	return o
}

// Service fetches the catalog feed, assembles the topic tree, and falls
// back to the local cache when the backend is unreachable.
type Service struct {
	feed Feed
	repo catalogrepo.Repository
	log  logging.Logger
	opts Options
}

// NewService wires a catalog service. repo may be nil, which disables the
// cache entirely.
func NewService(feed Feed, repo catalogrepo.Repository, log logging.Logger, opts Options) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{feed: feed, repo: repo, log: log, opts: opts.withDefaults()}
}

// Topics returns the catalog grouped for the home screen.
func (s *Service) Topics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	return RowsToTopics(rows, s.feed.AbsMediaURL), nil
}

// SubTitles returns the catalog grouped into detail pages.
func (s *Service) SubTitles(ctx context.Context) ([]models.SubTitle, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	return RowsToSubTitles(rows, s.feed.AbsMediaURL), nil
}

// Refresh fetches the feed from the backend and rewrites the cache,
// bypassing the offline fallback.
func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	s.cache(ctx, rows)
	return nil
}

// LastRefreshed reports when the cache last saw fresh data.
func (s *Service) LastRefreshed(ctx context.Context) (time.Time, error) {
	if s.repo == nil {
		return time.Time{}, nil
	}
	return s.repo.LastRefreshed(ctx)
}

// rows fetches the feed, serving the cached copy when the backend is
// unreachable. Auth failures are not masked by the cache.
func (s *Service) rows(ctx context.Context) ([]models.RawRow, error) {
	rows, err := s.fetch(ctx)
	if err == nil {
		s.cache(ctx, rows)
		return rows, nil
	}

	if s.repo == nil || !errors.Is(err, common.ErrUnavailable) {
		return nil, err
	}

	cached, cacheErr := s.repo.GetAll(ctx)
	if cacheErr != nil || len(cached) == 0 {
		return nil, err
	}
	s.log.Info(ctx, "backend unreachable, serving cached catalog", "rows", len(cached), "error", err)
	return cached, nil
}

// fetch performs the network request with exponential backoff. Only
// transport-level failures are retried; a definitive server answer is
// returned as is.
func (s *Service) fetch(ctx context.Context) ([]models.RawRow, error) {
	backoff := retry.WithMaxRetries(s.opts.MaxRetries, retry.NewExponential(300*time.Millisecond))

	var rows []models.RawRow
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()

		var err error
		rows, err = s.feed.FetchRows(fetchCtx, api.RowsRequest{Action: api.ActionRead})
		if err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	return rows, nil
}

func (s *Service) cache(ctx context.Context, rows []models.RawRow) {
	if s.repo == nil {
		return
	}
	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		s.log.Warn(ctx, "failed to update catalog cache", "error", err)
	}
}
