// Package client - клиент Hawkular-совместимого бэкенда метрик: запись точек,
// чтение диапазонов и проверка статуса.
//
// Каждый вызов - один синхронный запрос к бэкенду. Клиент не повторяет
// запросы, не буферизует и не кэширует данные: политика устойчивости
// остаётся за вызывающим кодом.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/models"
)

const (
	apiPrefix    = "/hawkular/metrics"
	tenantHeader = "Hawkular-Tenant"
)

type Client struct {
	cfg     config.ClientConfig
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

func New(cfg config.ClientConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		cfg:     cfg,
		baseURL: cfg.BaseURL() + apiPrefix,
		client:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger:  logger,
	}
}

// Tenant возвращает тенант, от имени которого работает клиент.
func (c *Client) Tenant() string {
	return c.cfg.Tenant
}

// QueryStatus запрашивает статус бэкенда. Любая ошибка - *ConnectionError.
func (c *Client) QueryStatus(ctx context.Context) (models.StatusInfo, error) {
	u := c.baseURL + "/status"

	resp, err := c.do(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, &ConnectionError{Op: "status", URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectionError{Op: "status", URL: u, StatusCode: resp.StatusCode}
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ConnectionError{Op: "status", URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode status: %w", err)}
	}

	status := make(models.StatusInfo, len(raw))
	for k, v := range raw {
		status[k] = fmt.Sprint(v)
	}
	return status, nil
}

// Push записывает одну точку ряда (type, name) под тенантом клиента.
// Возвращает управление только после ответа бэкенда или ошибки соединения.
func (c *Client) Push(ctx context.Context, mType models.MetricType, name string, value float64, timestamp int64) error {
	return c.write(ctx, mType, name, []models.DataPoint{{Timestamp: timestamp, Value: value}}, false)
}

// PushBatch записывает несколько точек одного ряда за один запрос.
// При включённом Gzip тело сжимается.
func (c *Client) PushBatch(ctx context.Context, mType models.MetricType, name string, points []models.DataPoint) error {
	return c.write(ctx, mType, name, points, c.cfg.Gzip)
}

func (c *Client) write(ctx context.Context, mType models.MetricType, name string, points []models.DataPoint, compress bool) error {
	id := c.metricID(mType, name)
	if !mType.Valid() {
		return &WriteError{Metric: id, Err: models.ErrInvalidMetricType}
	}

	data, err := encodeWrite(name, points)
	if err != nil {
		return &WriteError{Metric: id, Err: fmt.Errorf("encode points: %w", err)}
	}

	headers := map[string]string{"Content-Type": "application/json"}
	var body io.Reader = bytes.NewReader(data)
	if compress {
		buf, err := gzipBody(data)
		if err != nil {
			return &WriteError{Metric: id, Err: fmt.Errorf("compress points: %w", err)}
		}
		body = buf
		headers["Content-Encoding"] = "gzip"
	}

	u := c.baseURL + "/" + mType.Collection() + "/" + c.rawSegment()
	resp, err := c.do(ctx, http.MethodPost, u, body, headers)
	if err != nil {
		return &WriteError{Metric: id, Err: &ConnectionError{Op: "push", URL: u, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &WriteError{Metric: id, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	c.logger.WithFields(logrus.Fields{
		"metric": id.String(),
		"points": len(points),
	}).Debug("points pushed")
	return nil
}

// QueryMetric возвращает точки ряда в интервале [start, end) по возрастанию
// метки времени. Пустой интервал даёт пустой срез, а не ошибку. Диапазон
// не проверяется локально: ответ бэкенда на обратный интервал передаётся как есть.
func (c *Client) QueryMetric(ctx context.Context, mType models.MetricType, name string, start, end int64) ([]models.DataPoint, error) {
	id := c.metricID(mType, name)
	if !mType.Valid() {
		return nil, &ReadError{Metric: id, Err: models.ErrInvalidMetricType}
	}

	q := url.Values{}
	q.Set("start", strconv.FormatInt(start, 10))
	q.Set("end", strconv.FormatInt(end, 10))
	q.Set("order", "ASC")
	u := c.baseURL + "/" + mType.Collection() + "/" + url.PathEscape(name) + "/" + c.rawSegment() + "?" + q.Encode()

	resp, err := c.do(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, &ReadError{Metric: id, Err: &ConnectionError{Op: "query", URL: u, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return []models.DataPoint{}, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, &ReadError{Metric: id, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	points := []models.DataPoint{}
	if err := decodeOptional(resp.Body, &points); err != nil {
		return nil, &ReadError{Metric: id, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode points: %w", err)}
	}
	if points == nil {
		points = []models.DataPoint{}
	}

	slices.SortStableFunc(points, func(a, b models.DataPoint) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	})

	c.logger.WithFields(logrus.Fields{
		"metric": id.String(),
		"start":  start,
		"end":    end,
		"points": len(points),
	}).Debug("points queried")
	return points, nil
}

// ListMetrics возвращает определения рядов тенанта заданного типа.
func (c *Client) ListMetrics(ctx context.Context, mType models.MetricType) ([]models.MetricDefinition, error) {
	id := c.metricID(mType, "")
	if !mType.Valid() {
		return nil, &ReadError{Metric: id, Err: models.ErrInvalidMetricType}
	}

	u := c.baseURL + "/metrics?" + url.Values{"type": {mType.String()}}.Encode()
	defs := []models.MetricDefinition{}
	if err := c.getList(ctx, id, u, &defs); err != nil {
		return nil, err
	}
	if defs == nil {
		defs = []models.MetricDefinition{}
	}
	return defs, nil
}

// ListTenants возвращает тенанты, известные бэкенду.
func (c *Client) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	tenants := []models.Tenant{}
	if err := c.getList(ctx, models.MetricID{Tenant: c.cfg.Tenant}, c.baseURL+"/tenants", &tenants); err != nil {
		return nil, err
	}
	if tenants == nil {
		tenants = []models.Tenant{}
	}
	return tenants, nil
}

func (c *Client) getList(ctx context.Context, id models.MetricID, u string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, u, nil, nil)
	if err != nil {
		return &ReadError{Metric: id, Err: &ConnectionError{Op: "list", URL: u, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode/100 != 2 {
		return &ReadError{Metric: id, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if err := decodeOptional(resp.Body, out); err != nil {
		return &ReadError{Metric: id, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode list: %w", err)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(tenantHeader, c.cfg.Tenant)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.client.Do(req)
}

func (c *Client) metricID(mType models.MetricType, name string) models.MetricID {
	return models.MetricID{Tenant: c.cfg.Tenant, Type: mType, Name: name}
}

func (c *Client) rawSegment() string {
	if c.cfg.LegacyAPI {
		return "data"
	}
	return "raw"
}

// decodeOptional разбирает JSON, считая пустое тело пустым результатом.
func decodeOptional(r io.Reader, out interface{}) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
