package ratelimit

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 64

// sweepBatch caps how many buckets Sweep inspects per shard lock acquisition.
const sweepBatch = 256

type entry struct {
	bucket Bucket
	idx    int
}

// shard keeps its keys in a dense slice next to the map so Sweep can walk it
// by index and release the lock between batches.
type shard struct {
	mu      sync.Mutex
	buckets map[string]*entry
	keys    []string
}

func (sh *shard) remove(key string) {
	e := sh.buckets[key]
	last := len(sh.keys) - 1
	moved := sh.keys[last]
	sh.keys[e.idx] = moved
	sh.buckets[moved].idx = e.idx
	sh.keys = sh.keys[:last]
	delete(sh.buckets, key)
}

// BucketStore maps client keys to buckets. Keys are spread over a fixed number
// of independently locked shards, so checks for unrelated clients only contend
// when their keys hash to the same shard. The store is never persisted.
type BucketStore struct {
	shards []*shard
	mask   uint64
}

// NewBucketStore creates a store with the given number of shards, rounded up to
// a power of two. A non-positive count selects DefaultShards.
func NewBucketStore(shards int) *BucketStore {
	if shards <= 0 {
		shards = DefaultShards
	}
	n := 1
	for n < shards {
		n <<= 1
	}

	s := &BucketStore{
		shards: make([]*shard, n),
		mask:   uint64(n - 1),
	}
	for i := range s.shards {
		s.shards[i] = &shard{buckets: make(map[string]*entry)}
	}
	return s
}

func (s *BucketStore) shardFor(key string) *shard {
	return s.shards[xxhash.Sum64String(key)&s.mask]
}

// Update runs fn against the bucket for key while holding the key's shard lock,
// creating the bucket first if the key has not been seen. fn must not retain
// the bucket pointer.
func (s *BucketStore) Update(key string, fn func(b *Bucket)) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.buckets[key]
	if !ok {
		e = &entry{idx: len(sh.keys)}
		sh.buckets[key] = e
		sh.keys = append(sh.keys, key)
	}
	fn(&e.bucket)
}

// Get returns a copy of the bucket for key and whether it exists.
func (s *BucketStore) Get(key string) (Bucket, bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.buckets[key]
	if !ok {
		return Bucket{}, false
	}
	return e.bucket, true
}

// Len returns the number of buckets currently held.
func (s *BucketStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.buckets)
		sh.mu.Unlock()
	}
	return total
}

// Sweep removes every bucket whose windows have both expired at now and returns
// how many were removed. Each shard is scanned in batches of sweepBatch, with
// its lock released between batches, so a concurrent Check never waits on more
// than one batch.
func (s *BucketStore) Sweep(now time.Time) int {
	removed := 0
	for _, sh := range s.shards {
		removed += sh.sweep(now)
	}
	return removed
}

func (sh *shard) sweep(now time.Time) int {
	removed := 0
	i := 0
	for {
		sh.mu.Lock()
		if i >= len(sh.keys) {
			sh.mu.Unlock()
			return removed
		}
		for n := 0; n < sweepBatch && i < len(sh.keys); n++ {
			key := sh.keys[i]
			if sh.buckets[key].bucket.expired(now) {
				// the last key moves into slot i and is inspected next
				sh.remove(key)
				removed++
				continue
			}
			i++
		}
		sh.mu.Unlock()
	}
}
