package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/bikedash/internal/iocache"
	"github.com/huangsam/bikedash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const oneRow = "1,2011-01-01,0,Winter,Winter,Weekend/Holiday,Clear,Mist,3.28,16,985,Low Demand\n"

// countingMemo wraps Load so tests can see how often the file was parsed.
func countingMemo(store *iocache.MockCacheStore) (*Memo, *atomic.Int32) {
	var calls atomic.Int32
	m := NewMemo(nil)
	if store != nil {
		m.store = store
	}
	m.load = func(ctx context.Context, path string) (*schema.Dataset, error) {
		calls.Add(1)
		return Load(ctx, path)
	}
	return m, &calls
}

func TestMemoReusesLoad(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	m, calls := countingMemo(nil)

	first, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	second, err := m.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMemoReloadsChangedFile(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	m, calls := countingMemo(nil)

	first, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, first.Records, 1)

	require.NoError(t, os.WriteFile(path, []byte(header+oneRow+oneRow), 0o644))
	// Force a distinct mtime even on coarse filesystems
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, second.Records, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMemoInvalidate(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	m, calls := countingMemo(nil)

	_, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	m.Invalidate(path)
	_, err = m.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestMemoConcurrentCallersShareLoad(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	m, calls := countingMemo(nil)

	var wg sync.WaitGroup
	results := make([]*schema.Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := m.Load(context.Background(), path)
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, ds := range results {
		assert.Same(t, results[0], ds)
	}
}

func TestMemoCancelledCallerDoesNotFailOthers(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	m := NewMemo(nil)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	m.load = func(ctx context.Context, path string) (*schema.Dataset, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Load(ctx, path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := m.Load(ctx, path)
		firstErr <- err
	}()
	<-started

	type result struct {
		ds  *schema.Dataset
		err error
	}
	second := make(chan result, 1)
	go func() {
		ds, err := m.Load(context.Background(), path)
		second <- result{ds, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Len(t, res.ds.Records, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMemoLoadErrorNotCached(t *testing.T) {
	path := writeCSV(t, "dteday\n2011-01-01\n")
	m, calls := countingMemo(nil)

	_, err := m.Load(context.Background(), path)
	require.Error(t, err)
	_, err = m.Load(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMemoMissingFile(t *testing.T) {
	m, calls := countingMemo(nil)
	_, err := m.Load(context.Background(), "/nonexistent/rentals.csv")
	assert.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}

func TestMemoDurableCacheMiss(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	id, err := IdentityOf(path)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", id.Key()).Return(nil, 0, int64(0), sql.ErrNoRows)
	store.On("Set", id.Key(), mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

	m, calls := countingMemo(store)
	ds, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 1)
	assert.Equal(t, int32(1), calls.Load())
	store.AssertExpectations(t)
}

func TestMemoDurableCacheHit(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	id, err := IdentityOf(path)
	require.NoError(t, err)

	cached := schema.Dataset{
		Path:    id.AbsPath,
		ModTime: id.ModTime,
		Size:    id.Size,
		Records: []schema.RentalRecord{{Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), CntHour: 99, DemandCluster: schema.LowDemand}},
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", id.Key()).Return(data, currentCacheVersion, time.Now().Unix(), nil)

	m, calls := countingMemo(store)
	ds, err := m.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)
	assert.Equal(t, 99, ds.Records[0].CntHour, "records come from the cache")
	assert.Equal(t, int32(0), calls.Load())
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMemoDurableCacheRejectsStaleEntries(t *testing.T) {
	path := writeCSV(t, header+oneRow)
	id, err := IdentityOf(path)
	require.NoError(t, err)
	data, err := json.Marshal(schema.Dataset{Path: id.AbsPath, ModTime: id.ModTime, Size: id.Size})
	require.NoError(t, err)

	tests := []struct {
		name    string
		version int
		ts      int64
	}{
		{"old version", currentCacheVersion + 1, time.Now().Unix()},
		{"too old", currentCacheVersion, time.Now().Add(-8 * 24 * time.Hour).Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", id.Key()).Return(data, tt.version, tt.ts, nil)
			store.On("Set", id.Key(), mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(errors.New("read-only"))

			m, calls := countingMemo(store)
			_, err := m.Load(context.Background(), path)
			require.NoError(t, err, "a failed cache write is not fatal")
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestIdentityKey(t *testing.T) {
	now := time.Now()
	a := Identity{AbsPath: "/data/a.csv", ModTime: now, Size: 10}
	b := Identity{AbsPath: "/data/a.csv", ModTime: now.Add(time.Second), Size: 10}

	assert.Len(t, a.Key(), 64)
	assert.Equal(t, a.Key(), a.Key())
	assert.NotEqual(t, a.Key(), b.Key())
	assert.True(t, a.Same(a))
	assert.False(t, a.Same(b))
}
