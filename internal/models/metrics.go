// Package models содержит бизнес-сущности клиента метрик и приёмника алертов.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidMetricType = errors.New("invalid metric type")
)

// MetricType - тип временного ряда на стороне бэкенда.
type MetricType int

const (
	Gauge MetricType = iota + 1
	Counter
	Availability
)

var metricTypeNames = map[MetricType]string{
	Gauge:        "gauge",
	Counter:      "counter",
	Availability: "availability",
}

// Коллекции Hawkular REST API для каждого типа.
var metricTypeCollections = map[MetricType]string{
	Gauge:        "gauges",
	Counter:      "counters",
	Availability: "availability",
}

// ParseMetricType возвращает тип метрики по его имени (без учёта регистра).
func ParseMetricType(s string) (MetricType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range metricTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMetricType, s)
}

func (t MetricType) Valid() bool {
	_, ok := metricTypeNames[t]
	return ok
}

func (t MetricType) String() string {
	if n, ok := metricTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("MetricType(%d)", int(t))
}

// Collection возвращает сегмент пути REST API: gauges, counters, availability.
func (t MetricType) Collection() string {
	return metricTypeCollections[t]
}

func (t MetricType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidMetricType
	}
	return []byte(t.String()), nil
}

func (t *MetricType) UnmarshalText(b []byte) error {
	parsed, err := ParseMetricType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DataPoint - одна точка ряда. Timestamp в миллисекундах от эпохи (UTC).
type DataPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Time возвращает метку точки как time.Time в UTC.
func (p DataPoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// MetricID однозначно идентифицирует ряд: запрос должен использовать
// ту же тройку, что и запись.
type MetricID struct {
	Tenant string
	Type   MetricType
	Name   string
}

func (id MetricID) String() string {
	return fmt.Sprintf("%s/%s@%s", id.Type, id.Name, id.Tenant)
}

// TimeRange - интервал [Start, End) в миллисекундах. Клиент не проверяет Start <= End.
type TimeRange struct {
	Start int64
	End   int64
}

// Contains сообщает, попадает ли метка в полуоткрытый интервал.
func (r TimeRange) Contains(ts int64) bool {
	return ts >= r.Start && ts < r.End
}

// Sample - значение, собранное агентом до присвоения метки времени.
type Sample struct {
	Name  string
	Type  MetricType
	Value float64
}

// MetricDefinition - описание ряда, которое возвращает бэкенд.
type MetricDefinition struct {
	ID            string            `json:"id"`
	Type          string            `json:"type,omitempty"`
	Tenant        string            `json:"tenantId,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
	RetentionTime int               `json:"dataRetention,omitempty"`
}

// Tenant - запись из списка тенантов бэкенда.
type Tenant struct {
	ID string `json:"id"`
}

// StatusInfo - документ статуса бэкенда как есть.
type StatusInfo map[string]string

func (s StatusInfo) MetricsService() string {
	return s["MetricsService"]
}

func (s StatusInfo) Version() string {
	return s["Implementation-Version"]
}

// Started сообщает, что сервис метрик запущен.
func (s StatusInfo) Started() bool {
	return s.MetricsService() == "STARTED"
}
