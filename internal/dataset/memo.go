package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// currentCacheVersion defines the version of the cached dataset encoding
const currentCacheVersion = 1

// cacheMaxAge is how long a durable cache entry stays valid.
const cacheMaxAge = 7 * 24 * time.Hour

// Identity names one revision of a source file. A rewritten file has a new identity.
type Identity struct {
	AbsPath string
	ModTime time.Time
	Size    int64
}

// IdentityOf stats the file at path.
func IdentityOf(path string) (Identity, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to stat dataset: %w", err)
	}
	return Identity{AbsPath: absPath, ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Same reports whether both identities name the same revision.
func (id Identity) Same(other Identity) bool {
	return id.AbsPath == other.AbsPath && id.Size == other.Size && id.ModTime.Equal(other.ModTime)
}

// Key returns the cache key of the identity.
func (id Identity) Key() string {
	key := fmt.Sprintf("%s:%d:%d", id.AbsPath, id.ModTime.UnixNano(), id.Size)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// Memo is a DatasetLoader that loads each source revision once per process.
// Records are also kept in the durable cache store, when one is configured, so
// later processes skip parsing.
type Memo struct {
	store contract.CacheStore
	load  func(ctx context.Context, path string) (*schema.Dataset, error)

	mu      sync.Mutex
	entries map[string]*memoEntry // by AbsPath
	group   singleflight.Group
}

type memoEntry struct {
	id      Identity
	dataset *schema.Dataset
}

var _ contract.DatasetLoader = &Memo{}

// NewMemo creates a memoizing loader backed by store. A nil store disables the durable tier.
func NewMemo(store contract.CacheStore) *Memo {
	return &Memo{
		store:   store,
		load:    Load,
		entries: make(map[string]*memoEntry),
	}
}

// Load returns the dataset for path, reusing the in-process copy while the
// file identity is unchanged. Concurrent callers share one load, which a
// cancelled caller abandons without cancelling it for the others.
func (m *Memo) Load(ctx context.Context, path string) (*schema.Dataset, error) {
	id, err := IdentityOf(path)
	if err != nil {
		return nil, err
	}

	if ds := m.lookup(id); ds != nil {
		return ds, nil
	}

	key := id.Key()
	// The shared load outlives any single caller; each caller still stops waiting on its own ctx
	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		if ds := m.lookup(id); ds != nil {
			return ds, nil
		}
		if ds := m.checkCacheHit(key, id); ds != nil {
			m.remember(id, ds)
			return ds, nil
		}
		ds, err := m.load(shared, id.AbsPath)
		if err != nil {
			return nil, err
		}
		m.storeDurable(key, ds)
		m.remember(id, ds)
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*schema.Dataset), nil
	}
}

// Invalidate drops the in-process copy for path.
func (m *Memo) Invalidate(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, absPath)
}

func (m *Memo) lookup(id Identity) *schema.Dataset {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id.AbsPath]; ok && e.id.Same(id) {
		return e.dataset
	}
	return nil
}

// remember replaces any older revision of the same path.
func (m *Memo) remember(id Identity, ds *schema.Dataset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id.AbsPath] = &memoEntry{id: id, dataset: ds}
}

// checkCacheHit attempts to retrieve and validate a durable cache entry
func (m *Memo) checkCacheHit(key string, id Identity) *schema.Dataset {
	if m.store == nil {
		return nil
	}
	data, version, ts, err := m.store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return nil
	}

	var ds schema.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil
	}
	// Guard against a key collision across revisions
	if ds.Path != id.AbsPath || ds.Size != id.Size || !ds.ModTime.Equal(id.ModTime) {
		return nil
	}
	contract.Logger().Debug("Dataset cache hit", zap.String("path", id.AbsPath), zap.Int("records", len(ds.Records)))
	return &ds
}

// storeDurable writes the parsed dataset to the durable cache. Failures only cost a reparse later.
func (m *Memo) storeDurable(key string, ds *schema.Dataset) {
	if m.store == nil {
		return
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return
	}
	if err := m.store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.Logger().Warn("Failed to cache dataset", zap.String("path", ds.Path), zap.Error(err))
	}
}
