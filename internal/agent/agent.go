// Package agent - содержит логику агента: периодический сбор метрик и
// отправку каждой точки отдельным запросом в бэкенд.
package agent

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/collector"
	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/models"
	"github.com/chestorix/hawkmon/internal/utils"
)

// Pusher записывает одну точку. Реализуется client.Client.
type Pusher interface {
	Push(ctx context.Context, mType models.MetricType, name string, value float64, timestamp int64) error
}

// HostCollector собирает метрики хоста.
type HostCollector interface {
	Collect(ctx context.Context) ([]models.Sample, error)
}

type point struct {
	sample    models.Sample
	timestamp int64
}

type Agent struct {
	cfg     config.AgentConfig
	pusher  Pusher
	runtime *collector.RuntimeCollector
	host    HostCollector
	logger  *logrus.Logger
	now     func() time.Time

	mu     sync.Mutex
	latest map[string]models.Sample
}

// NewAgent создаёт агента. Неположительные интервалы и RateLimit заменяются
// значениями config.DefaultAgentConfig; бинарник отвергает их раньше через Validate.
func NewAgent(cfg config.AgentConfig, pusher Pusher, host HostCollector, logger *logrus.Logger) *Agent {
	defaults := config.DefaultAgentConfig()
	if cfg.RateLimit < 1 {
		cfg.RateLimit = defaults.RateLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = defaults.ReportInterval
	}
	return &Agent{
		cfg:     cfg,
		pusher:  pusher,
		runtime: collector.NewRuntimeCollector(),
		host:    host,
		logger:  logger,
		now:     time.Now,
		latest:  make(map[string]models.Sample),
	}
}

// Run работает до отмены ctx. Каждые PollInterval обновляет снимок метрик,
// каждые ReportInterval отправляет снимок через пул из RateLimit воркеров.
func (a *Agent) Run(ctx context.Context) {
	jobs := make(chan point, 100)

	var workers sync.WaitGroup
	for i := 0; i < a.cfg.RateLimit; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			a.worker(ctx, jobs)
		}()
	}

	var collectors sync.WaitGroup
	collectors.Add(1)
	go func() {
		defer collectors.Done()
		a.collectRuntimeMetrics(ctx)
	}()
	if a.host != nil {
		collectors.Add(1)
		go func() {
			defer collectors.Done()
			a.collectHostMetrics(ctx)
		}()
	}

	ticker := time.NewTicker(a.cfg.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.report(ctx, jobs)
		case <-ctx.Done():
			collectors.Wait()
			close(jobs)
			workers.Wait()
			return
		}
	}
}

func (a *Agent) collectRuntimeMetrics(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	a.store(a.runtime.Collect())
	for {
		select {
		case <-ticker.C:
			a.store(a.runtime.Collect())
		case <-ctx.Done():
			return
		}
	}
}

func (a *Agent) collectHostMetrics(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			samples, err := a.host.Collect(ctx)
			if err != nil {
				a.logger.WithError(err).Warn("failed to collect host metrics")
				continue
			}
			a.store(samples)
		case <-ctx.Done():
			return
		}
	}
}

func (a *Agent) store(samples []models.Sample) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range samples {
		a.latest[s.Name] = s
	}
}

// Snapshot возвращает последние значения, отсортированные по имени.
func (a *Agent) Snapshot() []models.Sample {
	a.mu.Lock()
	out := make([]models.Sample, 0, len(a.latest))
	for _, s := range a.latest {
		out = append(out, s)
	}
	a.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (a *Agent) report(ctx context.Context, jobs chan<- point) {
	ts := utils.TimeToMillis(a.now())
	for _, s := range a.Snapshot() {
		select {
		case jobs <- point{sample: s, timestamp: ts}:
		case <-ctx.Done():
			return
		}
	}
}

func (a *Agent) worker(ctx context.Context, jobs <-chan point) {
	for p := range jobs {
		if ctx.Err() != nil {
			continue
		}
		if err := a.pusher.Push(ctx, p.sample.Type, p.sample.Name, p.sample.Value, p.timestamp); err != nil {
			entry := a.logger.WithError(err).WithField("metric", p.sample.Name)
			switch {
			case utils.IsTimeout(err):
				entry.Warn("backend timed out")
			case utils.IsNetworkError(err):
				entry.Warn("backend unreachable")
			default:
				entry.Error("failed to push metric")
			}
		}
	}
}
