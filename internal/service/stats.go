package service

import "sync/atomic"

// Stats holds in-process usage counters. They feed both GET /api/stats and
// the Prometheus collectors; they reset on restart.
type Stats struct {
	Requests        atomic.Int64
	AnalysesServed  atomic.Int64
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
	QuotaRejections atomic.Int64
	ModelCalls      atomic.Int64
	ModelErrors     atomic.Int64
}

// StatsSnapshot is the JSON shape returned by the stats endpoint.
type StatsSnapshot struct {
	Requests        int64 `json:"requests"`
	AnalysesServed  int64 `json:"analysesServed"`
	CacheHits       int64 `json:"cacheHits"`
	CacheMisses     int64 `json:"cacheMisses"`
	QuotaRejections int64 `json:"quotaRejections"`
	ModelCalls      int64 `json:"modelCalls"`
	ModelErrors     int64 `json:"modelErrors"`
}

// Snapshot returns a point-in-time copy of all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Requests:        s.Requests.Load(),
		AnalysesServed:  s.AnalysesServed.Load(),
		CacheHits:       s.CacheHits.Load(),
		CacheMisses:     s.CacheMisses.Load(),
		QuotaRejections: s.QuotaRejections.Load(),
		ModelCalls:      s.ModelCalls.Load(),
		ModelErrors:     s.ModelErrors.Load(),
	}
}
