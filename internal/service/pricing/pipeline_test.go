package pricing_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
)

type fakeQuoter struct {
	calls   atomic.Int32
	block   chan struct{} // первый вызов ждёт закрытия канала
	started chan struct{}
	cleared bool
}

func (q *fakeQuoter) Quote(ctx context.Context, in pricing.QuoteInput) (*pricing.QuoteResult, error) {
	n := q.calls.Add(1)
	if n == 1 && q.block != nil {
		close(q.started)
		select {
		case <-q.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &pricing.QuoteResult{
		Quote:   domain.Quote{BaseAmount: float64(in.Party.Total())},
		Cleared: q.cleared,
	}, nil
}

type collector struct {
	mu      sync.Mutex
	updates []pricing.Update
	ch      chan struct{}
}

func newCollector() *collector {
	return &collector{ch: make(chan struct{}, 16)}
}

func (c *collector) add(u pricing.Update) {
	c.mu.Lock()
	c.updates = append(c.updates, u)
	c.mu.Unlock()
	c.ch <- struct{}{}
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no update received")
	}
}

func (c *collector) all() []pricing.Update {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]pricing.Update(nil), c.updates...)
}

func TestPipeline_DebouncesRapidChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	quoter := &fakeQuoter{}
	col := newCollector()
	p := pricing.NewPipeline(quoter, pricing.QuoteInput{Window: window(2)}, 50*time.Millisecond, col.add)
	defer p.Close()

	for i := 1; i <= 5; i++ {
		require.NoError(t, p.SetParty(domain.Party{Members: i}))
	}
	col.wait(t)

	assert.Equal(t, int32(1), quoter.calls.Load())
	updates := col.all()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(5), updates[0].Token)
	assert.Equal(t, 5.0, updates[0].Result.Quote.BaseAmount)
}

func TestPipeline_DropsStaleResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	quoter := &fakeQuoter{block: make(chan struct{}), started: make(chan struct{})}
	col := newCollector()
	p := pricing.NewPipeline(quoter, pricing.QuoteInput{Window: window(2)}, time.Millisecond, col.add)
	defer p.Close()

	require.NoError(t, p.SetParty(domain.Party{Members: 1}))
	<-quoter.started

	// новый ввод, пока первый расчёт в полёте
	require.NoError(t, p.SetParty(domain.Party{Members: 3}))
	close(quoter.block)
	col.wait(t)

	updates := col.all()
	require.Len(t, updates, 1)
	assert.Equal(t, uint64(2), updates[0].Token)
	assert.Equal(t, 3.0, updates[0].Result.Quote.BaseAmount)

	latest, ok := p.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), latest.Token)
}

func TestPipeline_ClearsIneligibleSelection(t *testing.T) {
	defer goleak.VerifyNone(t)

	quoter := &fakeQuoter{cleared: true}
	col := newCollector()
	p := pricing.NewPipeline(quoter, pricing.QuoteInput{Window: window(1), Party: domain.Party{Members: 1}}, time.Millisecond, col.add)
	defer p.Close()

	require.NoError(t, p.SetEntitlement(twentyPercent()))
	col.wait(t)

	assert.Nil(t, p.Inputs().Entitlement)
}

func TestPipeline_Close(t *testing.T) {
	defer goleak.VerifyNone(t)

	quoter := &fakeQuoter{}
	p := pricing.NewPipeline(quoter, pricing.QuoteInput{}, time.Hour, nil)

	require.NoError(t, p.SetPaymentMethod(domain.PaymentMethodPayNow))
	p.Close()
	p.Close()

	assert.ErrorIs(t, p.SetWindow(window(2)), pricing.ErrPipelineClosed)
	assert.Equal(t, int32(0), quoter.calls.Load())
}

func TestPipeline_CloseCancelsInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	quoter := &fakeQuoter{block: make(chan struct{}), started: make(chan struct{})}
	col := newCollector()
	p := pricing.NewPipeline(quoter, pricing.QuoteInput{}, time.Millisecond, col.add)

	require.NoError(t, p.SetParty(domain.Party{Members: 2}))
	<-quoter.started
	p.Close()

	assert.Empty(t, col.all())
}
