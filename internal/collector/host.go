package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/chestorix/hawkmon/internal/models"
)

// HostCollector снимает память и загрузку CPU через gopsutil.
// Ошибки отдельных источников не мешают остальным.
type HostCollector struct {
	cpuWindow time.Duration
}

func NewHostCollector(cpuWindow time.Duration) *HostCollector {
	return &HostCollector{cpuWindow: cpuWindow}
}

func (c *HostCollector) Collect(ctx context.Context) ([]models.Sample, error) {
	var samples []models.Sample
	var firstErr error

	if memStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		samples = append(samples,
			models.Sample{Name: "host.total_memory", Type: models.Gauge, Value: float64(memStat.Total)},
			models.Sample{Name: "host.free_memory", Type: models.Gauge, Value: float64(memStat.Free)},
			models.Sample{Name: "host.used_memory_percent", Type: models.Gauge, Value: memStat.UsedPercent},
		)
	} else {
		firstErr = fmt.Errorf("read memory stats: %w", err)
	}

	if cpuStats, err := cpu.PercentWithContext(ctx, c.cpuWindow, true); err == nil {
		for i, percent := range cpuStats {
			samples = append(samples, models.Sample{
				Name:  fmt.Sprintf("host.cpu%d.utilization", i),
				Type:  models.Gauge,
				Value: percent,
			})
		}
	} else if firstErr == nil {
		firstErr = fmt.Errorf("read cpu stats: %w", err)
	}

	if len(samples) == 0 {
		return nil, firstErr
	}
	return samples, nil
}
