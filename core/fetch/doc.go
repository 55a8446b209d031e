// Package fetch retrieves records from paginated external sources.
//
// A Source returns one page per call. The Fetcher wraps a Source with a bounded retry
// policy and exposes the pages as a lazy, finite, non-restartable sequence.
//
// # Retry policy
//
// Each page is attempted at most MaxAttempts times. Any error from the Source
// (non-success status, unparseable body, transport failure) counts as a failed
// attempt. By default the next attempt is issued immediately; RetryDelay enables an
// exponential backoff (cenkalti/backoff) without changing the attempt cap. When all
// attempts fail the sequence ends with a SourceUnavailableError and no further pages
// are requested.
//
// # Pagination
//
// The continuation token of the last successful page drives the next request. A page
// with an empty token or HasMore=false ends the sequence. Pages without records are
// not yielded. To resume elsewhere, construct a new Fetcher with InitialCursor.
//
// # Usage
//
//	f := fetch.New(source, fetch.Config{PageSize: 100, MaxAttempts: 3}, logger)
//	it := f.Pages()
//	for {
//	    page, err := it.Next(ctx)
//	    if errors.Is(err, fetch.ErrNoMorePages) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use page.Records
//	}
package fetch
