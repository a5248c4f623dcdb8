package bench

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chestorix/hawkmon/internal/client"
	"github.com/chestorix/hawkmon/internal/hawkulartest"
	"github.com/chestorix/hawkmon/internal/models"
	"github.com/chestorix/hawkmon/internal/utils"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRun(t *testing.T) {
	backend := hawkulartest.NewServer()
	defer backend.Close()
	c := client.New(backend.ClientConfig("python_test"), quietLogger())

	opts := DefaultOptions()
	opts.Count = 20
	opts.Now = time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

	logger, hook := logtest.NewNullLogger()
	var out bytes.Buffer
	res, err := Run(context.Background(), c, opts, &out, logger)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "benchmark completed", entry.Message)
	assert.Equal(t, "python_test", entry.Data["tenant"])

	assert.True(t, res.Status.Started())
	assert.Equal(t, 19, res.Writes)
	assert.Equal(t, 19, res.Reads)
	// окно [t-90s, t) содержит точку t-60s для всех, кроме самой старой
	assert.Equal(t, 18, res.PointsRead)

	stored := backend.Points("python_test", models.Gauge, "example.doc.1")
	require.Len(t, stored, 19)
	assert.Equal(t, int64(1700000000000-19*60000), stored[0].Timestamp)
	assert.Equal(t, int64(1700000000000-60000), stored[18].Timestamp)
	for _, p := range stored {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.Less(t, p.Value, 100.0)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 20)
}

func TestRun_StopsOnWriteError(t *testing.T) {
	backend := hawkulartest.NewServer()
	defer backend.Close()
	backend.FailStatus = http.StatusInternalServerError
	c := client.New(backend.ClientConfig("python_test"), quietLogger())

	opts := DefaultOptions()
	opts.Count = 5

	res, err := Run(context.Background(), c, opts, io.Discard, quietLogger())

	var writeErr *client.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 0, res.Writes)
}

func TestRun_DefaultsToCurrentTime(t *testing.T) {
	backend := hawkulartest.NewServer()
	defer backend.Close()
	c := client.New(backend.ClientConfig("python_test"), quietLogger())

	opts := DefaultOptions()
	opts.Count = 3

	before := utils.NowMillis()
	_, err := Run(context.Background(), c, opts, io.Discard, quietLogger())
	after := utils.NowMillis()
	require.NoError(t, err)

	stored := backend.Points("python_test", models.Gauge, "example.doc.1")
	require.Len(t, stored, 2)
	assert.GreaterOrEqual(t, stored[0].Timestamp, before-2*60000)
	assert.LessOrEqual(t, stored[1].Timestamp, after-60000)
	assert.Equal(t, int64(60000), stored[1].Timestamp-stored[0].Timestamp)
}

func TestRun_LogsFailureKind(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(backend *hawkulartest.Server)
		message string
		op      string
	}{
		{
			name:    "unreachable backend",
			prepare: func(backend *hawkulartest.Server) { backend.Close() },
			message: "backend unreachable",
			op:      "status",
		},
		{
			name:    "rejected write",
			prepare: func(backend *hawkulartest.Server) { backend.FailStatus = http.StatusInternalServerError },
			message: "backend rejected request",
			op:      "push",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := hawkulartest.NewServer()
			defer backend.Close()
			c := client.New(backend.ClientConfig("python_test"), quietLogger())
			tt.prepare(backend)

			logger, hook := logtest.NewNullLogger()
			_, err := Run(context.Background(), c, DefaultOptions(), io.Discard, logger)
			require.Error(t, err)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, tt.op, entry.Data["op"])
		})
	}
}
