package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

// Fetcher retrieves pages from a Source with bounded retries.
type Fetcher struct {
	source Source
	cfg    Config
	logger *zap.Logger
}

// New creates a fetcher.
func New(source Source, cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{source: source, cfg: cfg, logger: logger}
}

// Pages starts a new lazy page sequence at the configured initial cursor.
func (f *Fetcher) Pages() *Iterator {
	return &Iterator{f: f, cursor: f.cfg.InitialCursor}
}

// FetchAll drains a new sequence and returns every non-empty page in order.
// Any failure aborts the whole operation.
func (f *Fetcher) FetchAll(ctx context.Context) ([]*Page, error) {
	it := f.Pages()
	var pages []*Page
	for {
		page, err := it.Next(ctx)
		if errors.Is(err, ErrNoMorePages) {
			return pages, nil
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
}

// Records drains a new sequence and returns the concatenated raw records.
func (f *Fetcher) Records(ctx context.Context) ([]RawRecord, error) {
	pages, err := f.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []RawRecord
	for _, p := range pages {
		out = append(out, p.Records...)
	}
	return out, nil
}

// Iterator is a lazy, finite, non-restartable page sequence.
// It is not safe for concurrent use.
type Iterator struct {
	f      *Fetcher
	cursor string
	index  int
	done   bool
	err    error
}

// Next returns the next non-empty page, ErrNoMorePages when the sequence is
// exhausted, or the error that terminated it.
func (it *Iterator) Next(ctx context.Context) (*Page, error) {
	for {
		if it.err != nil {
			return nil, it.err
		}
		if it.done {
			return nil, ErrNoMorePages
		}

		it.index++
		page, err := it.f.fetchPage(ctx, it.index, it.cursor)
		if err != nil {
			it.err = err
			return nil, err
		}
		page.Index = it.index
		page.Cursor = it.cursor

		if !page.HasMore || page.NextCursor == "" {
			it.done = true
			it.f.logger.Info("No more pages", zap.Int("page", it.index))
		} else if page.NextCursor == it.cursor {
			it.err = fmt.Errorf("page %d: continuation token %q did not advance", it.index, it.cursor)
			return nil, it.err
		} else {
			it.cursor = page.NextCursor
		}

		if len(page.Records) == 0 {
			continue
		}
		return page, nil
	}
}

// Cursor returns the continuation token the next request will use. Callers that
// want to resume later persist it externally.
func (it *Iterator) Cursor() string {
	return it.cursor
}

func (f *Fetcher) fetchPage(ctx context.Context, index int, cursor string) (*Page, error) {
	l := f.logger.With(zap.Int("page", index), zap.String("cursor", cursor))
	b := f.newBackOff()

	var (
		lastErr    error
		lastStatus int
		attempt    int
	)
	for attempt = 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		l.Debug("Requesting page", zap.Int("attempt", attempt))

		page, err := f.source.FetchPage(ctx, cursor, f.cfg.PageSize)
		if err == nil && page != nil {
			l.Debug("Received page", zap.Int("records", len(page.Records)), zap.Bool("has_more", page.HasMore))
			return page, nil
		}
		if err == nil {
			err = errors.New("source returned no page")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr = err
		var se *StatusError
		if errors.As(err, &se) {
			lastStatus = se.Code
		}
		l.Warn("Page request failed", zap.Int("attempt", attempt), zap.Int("status", lastStatus), zap.Error(err))

		if attempt == f.cfg.MaxAttempts {
			break
		}
		if err := wait(ctx, b.NextBackOff()); err != nil {
			return nil, err
		}
	}

	l.Error("The maximum number of request attempts was reached", zap.Int("attempts", f.cfg.MaxAttempts))
	return nil, &SourceUnavailableError{
		Page:       index,
		Cursor:     cursor,
		Attempts:   f.cfg.MaxAttempts,
		LastStatus: lastStatus,
		Err:        lastErr,
	}
}

func (f *Fetcher) newBackOff() backoff.BackOff {
	if f.cfg.RetryDelay <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.cfg.RetryDelay
	if f.cfg.RetryMaxDelay > 0 {
		b.MaxInterval = f.cfg.RetryMaxDelay
	}
	// Attempts are capped by MaxAttempts, not by elapsed time.
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
