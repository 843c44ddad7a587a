package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	portssvc "github.com/SscSPs/bank_account_app/internal/core/ports/services"
	"github.com/SscSPs/bank_account_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

type countingBatch struct {
	runs atomic.Int32
}

func (b *countingBatch) PayGlobalInterest(ctx context.Context) (portssvc.InterestBatchResult, error) {
	b.runs.Add(1)
	return portssvc.InterestBatchResult{Applied: 1}, nil
}

func TestInterestScheduler_RunsUntilStopped(t *testing.T) {
	batch := &countingBatch{}
	scheduler := services.NewInterestScheduler(batch, 5*time.Millisecond)

	scheduler.Start(context.Background())
	scheduler.Start(context.Background()) // second start is a no-op

	assert.Eventually(t, func() bool { return batch.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	scheduler.Stop()
	stopped := batch.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, batch.runs.Load())

	scheduler.Stop() // stopping twice is safe
}

func TestInterestScheduler_Disabled(t *testing.T) {
	batch := &countingBatch{}
	scheduler := services.NewInterestScheduler(batch, 0)

	scheduler.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	scheduler.Stop()

	assert.Equal(t, int32(0), batch.runs.Load())
}

func TestInterestScheduler_StopsWithContext(t *testing.T) {
	batch := &countingBatch{}
	scheduler := services.NewInterestScheduler(batch, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	assert.Eventually(t, func() bool { return batch.runs.Load() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	// Stop still returns once the loop has exited on its own.
	scheduler.Stop()
}
