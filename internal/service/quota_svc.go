package service

import (
	"sync"
	"time"
)

// usageRecord tracks request count and window start for a single client key.
type usageRecord struct {
	count       int
	windowStart time.Time
}

// QuotaService is an in-memory fixed-window free-tier quota. Records are
// created lazily per client key, reset when the window expires, and swept
// periodically so the map does not grow without bound.
//
// Quota is consumed with Reserve/Release: Reserve takes a slot atomically
// before the guarded pipeline runs, and Release returns it if the pipeline
// fails. A client is therefore never charged for a provider failure, and two
// concurrent requests can never both squeeze past the limit.
type QuotaService struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	records map[string]*usageRecord
}

// NewQuotaService creates a quota service allowing limit requests per window.
func NewQuotaService(limit int, window time.Duration) *QuotaService {
	q := &QuotaService{
		limit:   limit,
		window:  window,
		records: make(map[string]*usageRecord),
	}
	go q.sweep()
	return q
}

// Reserve takes one quota slot for the key. It returns false, consuming
// nothing, when the key is already at the limit within the current window.
func (q *QuotaService) Reserve(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec := q.current(key)
	if rec.count >= q.limit {
		return false
	}
	rec.count++
	return true
}

// Release returns a previously reserved slot, called when the guarded
// pipeline fails after Reserve succeeded.
func (q *QuotaService) Release(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec, ok := q.records[key]
	if !ok || rec.count == 0 {
		return
	}
	rec.count--
}

// Remaining reports how many free-tier requests the key has left in the
// current window.
func (q *QuotaService) Remaining(key string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec := q.current(key)
	if left := q.limit - rec.count; left > 0 {
		return left
	}
	return 0
}

// current returns the live record for key, resetting it lazily when absent
// or when its window has expired. Caller must hold q.mu.
func (q *QuotaService) current(key string) *usageRecord {
	now := time.Now()
	rec, ok := q.records[key]
	if !ok || now.Sub(rec.windowStart) > q.window {
		rec = &usageRecord{windowStart: now}
		q.records[key] = rec
	}
	return rec
}

// sweep drops expired records every hour so abandoned client keys do not
// leak memory across long uptimes.
func (q *QuotaService) sweep() {
	ticker := time.NewTicker(time.Hour)
	for range ticker.C {
		q.mu.Lock()
		now := time.Now()
		for key, rec := range q.records {
			if now.Sub(rec.windowStart) > q.window {
				delete(q.records, key)
			}
		}
		q.mu.Unlock()
	}
}
