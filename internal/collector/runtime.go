// Package collector - сбор метрик процесса и хоста для агента.
package collector

import (
	"math/rand"
	"runtime"

	"github.com/chestorix/hawkmon/internal/models"
)

type RuntimeCollector struct {
	pollCount int64
}

func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{}
}

func (c *RuntimeCollector) Collect() []models.Sample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	samples := []models.Sample{
		{Name: "runtime.alloc", Type: models.Gauge, Value: float64(stats.Alloc)},
		{Name: "runtime.gc_cpu_fraction", Type: models.Gauge, Value: stats.GCCPUFraction},
		{Name: "runtime.gc_sys", Type: models.Gauge, Value: float64(stats.GCSys)},
		{Name: "runtime.heap_alloc", Type: models.Gauge, Value: float64(stats.HeapAlloc)},
		{Name: "runtime.heap_idle", Type: models.Gauge, Value: float64(stats.HeapIdle)},
		{Name: "runtime.heap_inuse", Type: models.Gauge, Value: float64(stats.HeapInuse)},
		{Name: "runtime.heap_objects", Type: models.Gauge, Value: float64(stats.HeapObjects)},
		{Name: "runtime.heap_sys", Type: models.Gauge, Value: float64(stats.HeapSys)},
		{Name: "runtime.stack_inuse", Type: models.Gauge, Value: float64(stats.StackInuse)},
		{Name: "runtime.sys", Type: models.Gauge, Value: float64(stats.Sys)},
		{Name: "runtime.goroutines", Type: models.Gauge, Value: float64(runtime.NumGoroutine())},
		{Name: "runtime.random_value", Type: models.Gauge, Value: rand.Float64()},
		{Name: "runtime.mallocs", Type: models.Counter, Value: float64(stats.Mallocs)},
		{Name: "runtime.frees", Type: models.Counter, Value: float64(stats.Frees)},
		{Name: "runtime.num_gc", Type: models.Counter, Value: float64(stats.NumGC)},
	}

	c.pollCount++
	samples = append(samples, models.Sample{
		Name:  "runtime.poll_count",
		Type:  models.Counter,
		Value: float64(c.pollCount),
	})

	return samples
}
