// Package detail loads the full record of a single vacancy.
package detail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jimezsa/jobsearch/internal/hh"
	"github.com/jimezsa/jobsearch/internal/loop"
	"github.com/jimezsa/jobsearch/internal/mapper"
	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/rs/zerolog"
)

// Source is the part of the hh client the fetcher depends on.
type Source interface {
	GetJob(ctx context.Context, id string) (hh.VacancyDetail, error)
}

// Fetcher is single shot: no caching, no retries.
type Fetcher struct {
	source Source
	logger zerolog.Logger
}

func NewFetcher(source Source, logger zerolog.Logger) (*Fetcher, error) {
	if source == nil {
		return nil, fmt.Errorf("detail: source is required")
	}
	return &Fetcher{
		source: source,
		logger: logger.With().Str("component", "detail").Logger(),
	}, nil
}

func (f *Fetcher) Fetch(ctx context.Context, id string) (models.DetailedJob, error) {
	log := f.logger.With().Str("request_id", uuid.NewString()).Str("vacancy_id", id).Logger()

	raw, err := f.source.GetJob(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("detail fetch failed")
		return models.DetailedJob{}, err
	}

	detail := mapper.MapDetail(raw)
	log.Debug().Msg("detail loaded")
	return detail, nil
}

// Load fetches in the background and delivers exactly one of onLoaded or
// onFailed on l. Nil callbacks are skipped.
func (f *Fetcher) Load(
	ctx context.Context,
	l *loop.Loop,
	id string,
	onLoaded func(models.DetailedJob),
	onFailed func(id string, err error),
) {
	go func() {
		detail, err := f.Fetch(ctx, id)
		l.Post(func() {
			if err != nil {
				if onFailed != nil {
					onFailed(id, err)
				}
				return
			}
			if onLoaded != nil {
				onLoaded(detail)
			}
		})
	}()
}
