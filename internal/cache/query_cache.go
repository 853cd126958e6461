package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Kind is the entity family a cache entry belongs to. Invalidation works per kind.
type Kind string

const (
	KindCampuses Kind = "campuses"
	KindPartners Kind = "partners"
	KindTickets  Kind = "tickets"
	KindCalendar Kind = "calendar"
	KindUsers    Kind = "users"
)

// Remote is an optional shared tier behind the in-process cache.
type Remote interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Recorder receives hit/miss notifications.
type Recorder interface {
	RecordCacheLookup(kind string, hit bool)
}

// Options configures a QueryCache.
type Options struct {
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	TTLs            map[Kind]time.Duration
	// FetchTimeout bounds a shared fetch, which outlives the caller that started it.
	FetchTimeout time.Duration
	Remote       Remote
	Recorder     Recorder
	Logger       *zap.Logger
}

// QueryCache memoizes accessor results by composite key, coalesces identical
// in-flight fetches and drops stale results after an invalidation.
type QueryCache struct {
	local    *gocache.Cache
	remote   Remote
	recorder Recorder
	logger   *zap.Logger
	group    singleflight.Group

	defaultTTL   time.Duration
	ttls         map[Kind]time.Duration
	fetchTimeout time.Duration

	mu          sync.Mutex
	generations map[Kind]uint64
}

// New builds a QueryCache.
func New(opts Options) *QueryCache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 2 * time.Minute
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 10 * time.Minute
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ttls := make(map[Kind]time.Duration, len(opts.TTLs))
	for k, v := range opts.TTLs {
		ttls[k] = v
	}
	return &QueryCache{
		local:        gocache.New(opts.DefaultTTL, opts.CleanupInterval),
		remote:       opts.Remote,
		recorder:     opts.Recorder,
		logger:       opts.Logger,
		defaultTTL:   opts.DefaultTTL,
		ttls:         ttls,
		fetchTimeout: opts.FetchTimeout,
		generations:  make(map[Kind]uint64),
	}
}

// Key builds the composite key: kind plus the sorted, encoded parameters.
func Key(kind Kind, params url.Values) string {
	if len(params) == 0 {
		return string(kind) + ":"
	}
	clean := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				clean.Add(k, v)
			}
		}
	}
	return string(kind) + ":" + clean.Encode()
}

// Fetch returns the cached value for (kind, params) or calls fn once for all
// concurrent callers of the same key. A result whose fetch began before an
// invalidation of its kind is returned to its callers but never stored.
//
// The shared fetch runs detached from the caller's cancellation, keeping its
// values (token, request id), so one caller giving up does not fail the
// others. Each caller still returns as soon as its own context is done.
func Fetch[T any](ctx context.Context, qc *QueryCache, kind Kind, params url.Values, fn func(context.Context) (T, error)) (T, error) {
	key := Key(kind, params)

	if v, ok := qc.local.Get(key); ok {
		if typed, ok := v.(T); ok {
			qc.record(kind, true)
			return typed, nil
		}
	}

	if qc.remote != nil {
		if raw, err := qc.remote.GetBytes(ctx, key); err == nil {
			var typed T
			if err := json.Unmarshal(raw, &typed); err == nil {
				qc.local.Set(key, typed, qc.ttl(kind))
				qc.record(kind, true)
				return typed, nil
			}
		}
	}
	qc.record(kind, false)

	gen := qc.generation(kind)
	flightKey := fmt.Sprintf("%s#%d", key, gen)
	ch := qc.group.DoChan(flightKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), qc.fetchTimeout)
		defer cancel()
		val, err := fn(fetchCtx)
		if err != nil {
			return nil, err
		}
		qc.store(fetchCtx, kind, key, gen, val)
		return val, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		var zero T
		return zero, res.Err
	}
	typed, ok := res.Val.(T)
	if !ok {
		var zero T
		return zero, errors.New("query cache: unexpected value type")
	}
	return typed, nil
}

func (qc *QueryCache) store(ctx context.Context, kind Kind, key string, gen uint64, val interface{}) {
	qc.mu.Lock()
	current := qc.generations[kind]
	if current != gen {
		qc.mu.Unlock()
		qc.logger.Debug("dropping stale query result", zap.String("key", key))
		return
	}
	ttl := qc.ttl(kind)
	qc.local.Set(key, val, ttl)
	qc.mu.Unlock()

	if qc.remote == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := qc.remote.SetBytes(ctx, key, raw, ttl); err != nil {
		qc.logger.Warn("remote cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	// An invalidation that ran between the local and the remote write has
	// already swept the remote tier; undo the write it missed.
	if qc.generation(kind) != gen {
		if err := qc.remote.Delete(ctx, key); err != nil {
			qc.logger.Warn("remote cache rollback failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Invalidate drops every entry of the given kinds and makes in-flight fetches
// for them stale.
func (qc *QueryCache) Invalidate(ctx context.Context, kinds ...Kind) {
	qc.mu.Lock()
	for _, kind := range kinds {
		qc.generations[kind]++
		prefix := string(kind) + ":"
		for key := range qc.local.Items() {
			if strings.HasPrefix(key, prefix) {
				qc.local.Delete(key)
			}
		}
	}
	qc.mu.Unlock()

	if qc.remote == nil {
		return
	}
	for _, kind := range kinds {
		if err := qc.remote.DeletePrefix(ctx, string(kind)+":"); err != nil {
			qc.logger.Warn("remote cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}

// Len reports the number of live in-process entries.
func (qc *QueryCache) Len() int {
	return qc.local.ItemCount()
}

func (qc *QueryCache) generation(kind Kind) uint64 {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return qc.generations[kind]
}

func (qc *QueryCache) ttl(kind Kind) time.Duration {
	if ttl, ok := qc.ttls[kind]; ok && ttl > 0 {
		return ttl
	}
	return qc.defaultTTL
}

func (qc *QueryCache) record(kind Kind, hit bool) {
	if qc.recorder != nil {
		qc.recorder.RecordCacheLookup(string(kind), hit)
	}
}
