package redis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

func newTestSequencer(t *testing.T) (*Sequencer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSequencer(client), mr
}

func TestSequencer_IndependentCounters(t *testing.T) {
	seq, mr := newTestSequencer(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := seq.Next(ctx, "wh-1", entity.OperationReceipt)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := seq.Next(ctx, "wh-1", entity.OperationDelivery)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "cada tipo tiene su contador")

	got, err = seq.Next(ctx, "wh-2", entity.OperationReceipt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "cada bodega tiene su contador")

	v, err := mr.Get("opseq:wh-1:IN")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestSequencer_ConcurrentNoDuplicates(t *testing.T) {
	seq, _ := newTestSequencer(t)
	ctx := context.Background()

	const n = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, "wh-1", entity.OperationTransfer)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[i], "falta %d", i)
	}
}

func TestSequencer_ServerDown(t *testing.T) {
	seq, mr := newTestSequencer(t)
	mr.Close()

	_, err := seq.Next(context.Background(), "wh-1", entity.OperationAdjustment)
	assert.Error(t, err)
}
