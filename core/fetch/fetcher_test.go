package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource serves pages keyed by cursor and can fail selected cursors.
type scriptedSource struct {
	pages    map[string]*Page
	failures map[string]int // cursor -> number of leading failed attempts (-1 = always)
	status   int
	attempts map[string]int
	cursors  []string
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		pages:    make(map[string]*Page),
		failures: make(map[string]int),
		attempts: make(map[string]int),
		status:   503,
	}
}

func (s *scriptedSource) FetchPage(ctx context.Context, cursor string, pageSize int) (*Page, error) {
	s.attempts[cursor]++
	s.cursors = append(s.cursors, cursor)
	if n, ok := s.failures[cursor]; ok && (n < 0 || s.attempts[cursor] <= n) {
		return nil, &StatusError{Code: s.status}
	}
	p, ok := s.pages[cursor]
	if !ok {
		return nil, fmt.Errorf("unknown cursor %q", cursor)
	}
	cp := *p
	return &cp, nil
}

func rawRecords(ids ...int) []RawRecord {
	out := make([]RawRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, RawRecord{"_id": fmt.Sprint(id)})
	}
	return out
}

// threePages serves three populated pages followed by an empty terminal page.
func threePages() *scriptedSource {
	s := newScriptedSource()
	s.pages[""] = &Page{Records: rawRecords(1, 2), NextCursor: "c1", HasMore: true}
	s.pages["c1"] = &Page{Records: rawRecords(3, 4), NextCursor: "c2", HasMore: true}
	s.pages["c2"] = &Page{Records: rawRecords(5), NextCursor: "c3", HasMore: true}
	s.pages["c3"] = &Page{Records: nil, NextCursor: "", HasMore: false}
	return s
}

func TestFetchAll_PaginationTermination(t *testing.T) {
	src := threePages()
	f := New(src, Config{PageSize: 2, MaxAttempts: 3}, nil)

	pages, err := f.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, []string{"", "c1", "c2", "c3"}, src.cursors)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Index)
		assert.NotEmpty(t, p.Records)
	}
	assert.Equal(t, "c1", pages[1].Cursor)
}

func TestIterator_ExplicitEndSignal(t *testing.T) {
	it := New(threePages(), Config{MaxAttempts: 1}, nil).Pages()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := it.Next(ctx)
		require.NoError(t, err)
	}
	_, err := it.Next(ctx)
	assert.ErrorIs(t, err, ErrNoMorePages)

	// Not restartable: the exhausted iterator stays exhausted.
	_, err = it.Next(ctx)
	assert.ErrorIs(t, err, ErrNoMorePages)
}

func TestIterator_HasMoreFalseStops(t *testing.T) {
	src := newScriptedSource()
	src.pages[""] = &Page{Records: rawRecords(1), NextCursor: "c1", HasMore: false}

	pages, err := New(src, Config{MaxAttempts: 1}, nil).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Equal(t, []string{""}, src.cursors, "HasMore=false must not request the next cursor")
}

func TestIterator_SkipsEmptyIntermediatePage(t *testing.T) {
	src := newScriptedSource()
	src.pages[""] = &Page{Records: nil, NextCursor: "c1", HasMore: true}
	src.pages["c1"] = &Page{Records: rawRecords(9), HasMore: false}

	pages, err := New(src, Config{MaxAttempts: 1}, nil).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 2, pages[0].Index)
}

func TestIterator_StuckCursor(t *testing.T) {
	src := newScriptedSource()
	src.pages[""] = &Page{Records: rawRecords(1), NextCursor: "c1", HasMore: true}
	src.pages["c1"] = &Page{Records: rawRecords(2), NextCursor: "c1", HasMore: true}

	_, err := New(src, Config{MaxAttempts: 1}, nil).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not advance")
}

func TestFetch_RetryExhaustion(t *testing.T) {
	src := threePages()
	src.failures["c1"] = -1

	f := New(src, Config{PageSize: 2, MaxAttempts: 3}, nil)
	pages, err := f.FetchAll(context.Background())

	require.Error(t, err)
	assert.Nil(t, pages, "no partial result on abort")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, 3, src.attempts["c1"], "exactly maxAttempts attempts")
	assert.Equal(t, 1, src.attempts[""], "earlier pages are not retried")
	assert.Zero(t, src.attempts["c2"], "later pages are never requested")

	var su *SourceUnavailableError
	require.True(t, errors.As(err, &su))
	assert.Equal(t, 2, su.Page)
	assert.Equal(t, "c1", su.Cursor)
	assert.Equal(t, 3, su.Attempts)
	assert.Equal(t, 503, su.LastStatus)
}

func TestFetch_RecoversWithinBound(t *testing.T) {
	src := threePages()
	src.failures["c2"] = 2

	records, err := New(src, Config{MaxAttempts: 3}, nil).Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, 3, src.attempts["c2"])
}

func TestFetch_ParseFailureCountsAsAttempt(t *testing.T) {
	calls := 0
	src := SourceFunc(func(ctx context.Context, cursor string, pageSize int) (*Page, error) {
		calls++
		return nil, errors.New("failed to parse response: unexpected EOF")
	})

	_, err := New(src, Config{MaxAttempts: 2}, nil).FetchAll(context.Background())
	var su *SourceUnavailableError
	require.True(t, errors.As(err, &su))
	assert.Equal(t, 0, su.LastStatus)
	assert.Equal(t, 2, calls)
}

func TestFetch_MaxAttemptsFloor(t *testing.T) {
	src := threePages()
	src.failures[""] = -1

	_, err := New(src, Config{MaxAttempts: 0}, nil).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, 1, src.attempts[""])
}

func TestFetch_BackoffHonoursCancellation(t *testing.T) {
	src := threePages()
	src.failures[""] = -1

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := New(src, Config{MaxAttempts: 5, RetryDelay: time.Hour}, nil)
	start := time.Now()
	_, err := f.FetchAll(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, src.attempts[""])
}

func TestFetch_InitialCursor(t *testing.T) {
	src := threePages()

	pages, err := New(src, Config{MaxAttempts: 1, InitialCursor: "c2"}, nil).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Equal(t, []string{"c2", "c3"}, src.cursors)
}
