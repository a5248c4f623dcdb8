package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chestorix/hawkmon/internal/models"
)

func findSample(samples []models.Sample, name string) (models.Sample, bool) {
	for _, s := range samples {
		if s.Name == name {
			return s, true
		}
	}
	return models.Sample{}, false
}

func TestRuntimeCollector_Collect(t *testing.T) {
	c := NewRuntimeCollector()

	first := c.Collect()
	second := c.Collect()

	alloc, ok := findSample(first, "runtime.alloc")
	require.True(t, ok)
	assert.Equal(t, models.Gauge, alloc.Type)
	assert.Greater(t, alloc.Value, 0.0)

	poll, ok := findSample(second, "runtime.poll_count")
	require.True(t, ok)
	assert.Equal(t, models.Counter, poll.Type)
	assert.Equal(t, 2.0, poll.Value)

	for _, s := range first {
		assert.True(t, s.Type.Valid(), s.Name)
	}
}

func TestHostCollector_Collect(t *testing.T) {
	c := NewHostCollector(10 * time.Millisecond)

	samples, err := c.Collect(context.Background())
	if err != nil {
		t.Skipf("host stats unavailable: %v", err)
	}

	total, ok := findSample(samples, "host.total_memory")
	require.True(t, ok)
	assert.Greater(t, total.Value, 0.0)
}
