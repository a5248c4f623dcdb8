package client

import (
	"fmt"

	"github.com/chestorix/hawkmon/internal/models"
)

// ConnectionError - бэкенд недоступен или отверг соединение.
// StatusCode заполнен, когда бэкенд ответил, но не 2xx (только для status).
type ConnectionError struct {
	Err        error
	Op         string
	URL        string
	StatusCode int
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: backend returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WriteError - запись точки отвергнута или не дошла до бэкенда.
type WriteError struct {
	Err        error
	Metric     models.MetricID
	Message    string
	StatusCode int
}

func (e *WriteError) Error() string {
	return "write " + e.Metric.String() + ": " + describe(e.Err, e.StatusCode, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadError - запрос данных отвергнут или ответ не разобран.
type ReadError struct {
	Err        error
	Metric     models.MetricID
	Message    string
	StatusCode int
}

func (e *ReadError) Error() string {
	return "read " + e.Metric.String() + ": " + describe(e.Err, e.StatusCode, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func describe(err error, status int, msg string) string {
	switch {
	case err != nil:
		return err.Error()
	case msg != "":
		return fmt.Sprintf("server returned status %d: %s", status, msg)
	default:
		return fmt.Sprintf("server returned status %d", status)
	}
}
