package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	markup      string
	waitErr     error
	block       bool
	snapshotErr error
	snapshots   int
}

func (p *fakePage) WaitPresent(ctx context.Context, selector string) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.waitErr
}

func (p *fakePage) Snapshot(ctx context.Context) (string, error) {
	p.snapshots++
	return p.markup, p.snapshotErr
}

func TestExtract(t *testing.T) {
	page := &fakePage{markup: singleMarketHTML}
	e := New(time.Second, nil)

	markets, err := e.Extract(context.Background(), page)

	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "1X2", markets[0].Legend)
	assert.Len(t, markets[0].Outcomes, 2)
}

func TestExtractWaitDeadlineIsEmpty(t *testing.T) {
	page := &fakePage{block: true, markup: singleMarketHTML}
	e := New(20*time.Millisecond, nil)

	start := time.Now()
	markets, err := e.Extract(context.Background(), page)

	require.NoError(t, err)
	assert.Empty(t, markets)
	assert.Equal(t, 0, page.snapshots)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestExtractWrappedDeadlineIsEmpty(t *testing.T) {
	page := &fakePage{waitErr: wrapErr{context.DeadlineExceeded}}
	e := New(time.Second, nil)

	markets, err := e.Extract(context.Background(), page)

	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestExtractPageErrors(t *testing.T) {
	waitErr := errors.New("target closed")
	_, err := New(time.Second, nil).Extract(context.Background(), &fakePage{waitErr: waitErr})
	require.ErrorIs(t, err, waitErr)

	snapErr := errors.New("no page is currently open")
	_, err = New(time.Second, nil).Extract(context.Background(), &fakePage{snapshotErr: snapErr})
	require.ErrorIs(t, err, snapErr)
}

func TestExtractParentCancelledIsError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	_, err := New(time.Second, nil).Extract(ctx, &fakePage{block: true})
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	assert.Equal(t, DefaultWaitTimeout, New(0, nil).WaitTimeout)
}

type wrapErr struct{ err error }

func (w wrapErr) Error() string { return "wait: " + w.err.Error() }
func (w wrapErr) Unwrap() error { return w.err }
