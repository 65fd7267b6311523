package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/polymesh/engine/containers"
)

const AVG_COUNT int = 30

// CacheMetrics tracks lookups against derived topology caches.
type CacheMetrics struct {
	Hits     uint64
	Misses   uint64
	Rebuilds uint64
	// rolling window of the last AVG_COUNT rebuild durations in milliseconds
	rebuildMS *containers.RingQueue[float64]
}

type MetricsState struct {
	caches map[string]*CacheMetrics
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			caches: make(map[string]*CacheMetrics),
		}
	})
	return nil
}

func cacheMetrics(name string) *CacheMetrics {
	_ = MetricsInitialize()
	cm, ok := metricsState.caches[name]
	if !ok {
		cm = &CacheMetrics{rebuildMS: containers.NewRingQueue[float64](AVG_COUNT)}
		metricsState.caches[name] = cm
	}
	return cm
}

// MetricsCacheHit records a lookup served from cache.
func MetricsCacheHit(name string) {
	cacheMetrics(name).Hits++
}

// MetricsCacheMiss records a lookup that rebuilt its entry and how long the
// rebuild took.
func MetricsCacheMiss(name string, rebuild time.Duration) {
	cm := cacheMetrics(name)
	cm.Misses++
	cm.Rebuilds++
	cm.rebuildMS.Push(float64(rebuild.Microseconds()) / 1000.0)
}

// MetricsCache returns a snapshot of the counters for name.
func MetricsCache(name string) CacheMetrics {
	cm := cacheMetrics(name)
	return CacheMetrics{Hits: cm.Hits, Misses: cm.Misses, Rebuilds: cm.Rebuilds}
}

// MetricsCacheNames returns every cache that has recorded a lookup.
func MetricsCacheNames() []string {
	_ = MetricsInitialize()
	names := make([]string, 0, len(metricsState.caches))
	for n := range metricsState.caches {
		names = append(names, n)
	}
	return names
}

// MetricsRebuildAverage returns the average rebuild time in milliseconds over
// the last AVG_COUNT rebuilds of name.
func MetricsRebuildAverage(name string) float64 {
	cm := cacheMetrics(name)
	if cm.rebuildMS.IsEmpty() {
		return 0
	}
	var sum float64
	cm.rebuildMS.Each(func(ms float64) { sum += ms })
	return sum / float64(cm.rebuildMS.Len())
}

// MetricsReset clears every counter.
func MetricsReset() {
	_ = MetricsInitialize()
	metricsState.caches = make(map[string]*CacheMetrics)
}
