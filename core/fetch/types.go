package fetch

import (
	"context"
	"time"
)

// RawRecord is a record as decoded from the source, before normalization.
type RawRecord = map[string]any

// Page is one page of raw records plus its pagination metadata.
type Page struct {
	// Index is the 1-based position of the page in the sequence of requests.
	Index int

	// Cursor is the continuation token this page was requested with.
	Cursor string

	// NextCursor is the continuation token for the following page.
	NextCursor string

	// HasMore reports whether the source has further pages.
	HasMore bool

	// Records holds the raw records in source order.
	Records []RawRecord
}

// Source fetches a single page. Implementations report a non-success transport
// status with *StatusError.
type Source interface {
	FetchPage(ctx context.Context, cursor string, pageSize int) (*Page, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, cursor string, pageSize int) (*Page, error)

// FetchPage calls f.
func (f SourceFunc) FetchPage(ctx context.Context, cursor string, pageSize int) (*Page, error) {
	return f(ctx, cursor, pageSize)
}

// Config holds the per-run fetch configuration.
type Config struct {
	// PageSize is the number of records requested per page.
	PageSize int

	// MaxAttempts caps the attempts per page. Values below 1 mean 1.
	MaxAttempts int

	// InitialCursor is the continuation token of the first request.
	InitialCursor string

	// RetryDelay is the first backoff interval. Zero retries immediately.
	RetryDelay time.Duration

	// RetryMaxDelay caps the backoff interval. Zero means no cap beyond the default.
	RetryMaxDelay time.Duration
}
