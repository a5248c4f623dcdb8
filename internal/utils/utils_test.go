package utils

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMillis(t *testing.T) {
	base := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

	t.Run("known value", func(t *testing.T) {
		assert.Equal(t, int64(1700000000000), TimeToMillis(base))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, TimeToMillis(base), TimeToMillis(base))
	})

	t.Run("one millisecond apart", func(t *testing.T) {
		next := base.Add(time.Millisecond)
		assert.Equal(t, int64(1), TimeToMillis(next)-TimeToMillis(base))
	})

	t.Run("sub-millisecond part is truncated", func(t *testing.T) {
		assert.Equal(t, TimeToMillis(base), TimeToMillis(base.Add(999*time.Microsecond)))
		assert.Equal(t, TimeToMillis(base)+1, TimeToMillis(base.Add(1999*time.Microsecond)))
	})

	t.Run("zone does not matter", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		assert.Equal(t, TimeToMillis(base), TimeToMillis(base.In(loc)))
	})

	t.Run("before epoch", func(t *testing.T) {
		epoch := time.Unix(0, 0).UTC()
		assert.Equal(t, int64(-1), TimeToMillis(epoch.Add(-time.Millisecond)))
		assert.Equal(t, int64(-1), TimeToMillis(epoch.Add(-time.Microsecond)))
	})
}

func TestDateToMillis(t *testing.T) {
	assert.Equal(t, int64(1700000000000), DateToMillis(2023, time.November, 14, 22, 13, 20, 0))
	assert.Equal(t, int64(1700000000001), DateToMillis(2023, time.November, 14, 22, 13, 20, 1_500_000))
}

func TestMillisToTime(t *testing.T) {
	ms := int64(1700000000123)
	got := MillisToTime(ms)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, ms, TimeToMillis(got))
}

func TestHmacSHA256(t *testing.T) {
	body := []byte("alert: disk full")
	sig := ComputeHmacSHA256(body, "secret")

	assert.Len(t, sig, 64)
	assert.True(t, VerifyHmacSHA256(body, "secret", sig))
	assert.False(t, VerifyHmacSHA256(body, "other", sig))
	assert.False(t, VerifyHmacSHA256(body, "secret", "not-hex"))
}

func TestIsNetworkError(t *testing.T) {
	_, err := net.Dial("tcp", "127.0.0.1:1")
	require.Error(t, err)

	assert.True(t, IsNetworkError(err))
	assert.False(t, IsNetworkError(errors.New("plain")))
	assert.False(t, IsTimeout(errors.New("plain")))
}

func TestPrintBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildInfo(&buf, "1.0.0", "", "abc")

	assert.Equal(t, "Build version: 1.0.0\nBuild date: N/A\nBuild commit: abc\n", buf.String())
}
