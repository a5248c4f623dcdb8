// Package bench - нагрузочная проверка бэкенда: серия одиночных записей
// с шагом Step назад от текущего времени и чтение каждой точки окном Window.
package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/models"
	"github.com/chestorix/hawkmon/internal/utils"
)

// MetricsClient - операции клиента, которые нужны нагрузочной проверке.
type MetricsClient interface {
	Tenant() string
	QueryStatus(ctx context.Context) (models.StatusInfo, error)
	Push(ctx context.Context, mType models.MetricType, name string, value float64, timestamp int64) error
	QueryMetric(ctx context.Context, mType models.MetricType, name string, start, end int64) ([]models.DataPoint, error)
}

type Options struct {
	Metric string
	Type   models.MetricType
	Count  int
	Step   time.Duration
	Window time.Duration
	Now    time.Time
}

func DefaultOptions() Options {
	return Options{
		Metric: "example.doc.1",
		Type:   models.Gauge,
		Count:  1000,
		Step:   time.Minute,
		Window: 90 * time.Second,
	}
}

type Result struct {
	Status        models.StatusInfo
	Writes        int
	Reads         int
	PointsRead    int
	WriteDuration time.Duration
	ReadDuration  time.Duration
}

// Run выполняет проверку и печатает в out каждое прочитанное окно.
// Первая ошибка клиента прерывает проверку.
func Run(ctx context.Context, c MetricsClient, opts Options, out io.Writer, logger *logrus.Logger) (Result, error) {
	var res Result

	status, err := c.QueryStatus(ctx)
	if err != nil {
		logFailure(logger, "status", err)
		return res, err
	}
	res.Status = status
	fmt.Fprintln(out, status)

	tmilli := utils.NowMillis()
	if !opts.Now.IsZero() {
		tmilli = utils.TimeToMillis(opts.Now)
	}
	step := opts.Step.Milliseconds()
	window := opts.Window.Milliseconds()

	start := time.Now()
	for i := 1; i < opts.Count; i++ {
		t := tmilli - int64(i)*step
		if err := c.Push(ctx, opts.Type, opts.Metric, rand.Float64()*100, t); err != nil {
			logFailure(logger, "push", err)
			return res, err
		}
		res.Writes++
	}
	res.WriteDuration = time.Since(start)

	start = time.Now()
	for i := 1; i < opts.Count; i++ {
		t := tmilli - int64(i)*step
		points, err := c.QueryMetric(ctx, opts.Type, opts.Metric, t-window, t)
		if err != nil {
			logFailure(logger, "query", err)
			return res, err
		}
		res.Reads++
		res.PointsRead += len(points)
		fmt.Fprintln(out, t-window, t, points)
	}
	res.ReadDuration = time.Since(start)

	logger.WithFields(logrus.Fields{
		"tenant":         c.Tenant(),
		"metric":         opts.Metric,
		"writes":         res.Writes,
		"reads":          res.Reads,
		"points_read":    res.PointsRead,
		"write_duration": res.WriteDuration.String(),
		"read_duration":  res.ReadDuration.String(),
	}).Info("benchmark completed")
	return res, nil
}

// logFailure отделяет недоступный бэкенд от отказа в записи или чтении.
func logFailure(logger *logrus.Logger, op string, err error) {
	entry := logger.WithError(err).WithField("op", op)
	switch {
	case utils.IsTimeout(err):
		entry.Error("backend timed out")
	case utils.IsNetworkError(err):
		entry.Error("backend unreachable")
	default:
		entry.Error("backend rejected request")
	}
}
