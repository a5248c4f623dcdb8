package receiver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterSink{W: &buf}.Expose(context.Background(), Notification{Body: []byte("alert: disk full")}))
	assert.Equal(t, "alert: disk full\n", buf.String())

	err := WriterSink{W: failingWriter{}}.Expose(context.Background(), Notification{Body: []byte("x")})
	assert.ErrorContains(t, err, "broken pipe")
}

func TestLogSink(t *testing.T) {
	tests := []struct {
		name        string
		level       logrus.Level
		wantPayload bool
	}{
		{name: "info hides payload", level: logrus.InfoLevel, wantPayload: false},
		{name: "debug shows payload", level: logrus.DebugLevel, wantPayload: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logrus.New()
			logger.SetOutput(&buf)
			logger.SetFormatter(&logrus.JSONFormatter{})
			logger.SetLevel(tt.level)

			n := Notification{Method: "POST", Path: "/", Body: []byte("alert: disk full")}
			require.NoError(t, LogSink{Logger: logger}.Expose(context.Background(), n))

			assert.Contains(t, buf.String(), `"msg":"notification received"`)
			assert.Contains(t, buf.String(), `"size":16`)
			assert.Equal(t, tt.wantPayload, bytes.Contains(buf.Bytes(), []byte(`"payload":"alert: disk full"`)))
		})
	}
}

func TestMultiSink(t *testing.T) {
	var calls []string
	first := SinkFunc(func(_ context.Context, n Notification) error {
		calls = append(calls, "first:"+string(n.Body))
		return errors.New("first failed")
	})
	second := SinkFunc(func(_ context.Context, n Notification) error {
		calls = append(calls, "second:"+string(n.Body))
		return nil
	})

	err := MultiSink{first, second}.Expose(context.Background(), Notification{Body: []byte("a")})

	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first:a", "second:a"}, calls)
	assert.NoError(t, MultiSink{}.Expose(context.Background(), Notification{}))
}
