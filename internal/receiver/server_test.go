package receiver

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chestorix/hawkmon/internal/config"
)

func TestServer_SequentialNotifications(t *testing.T) {
	var out bytes.Buffer
	sink := MultiSink{WriterSink{W: &out}, &recordingSink{}}
	recorder := sink[1].(*recordingSink)

	ts := httptest.NewServer(NewServer(config.DefaultReceiverConfig(), sink, testLogger()).Handler())
	defer ts.Close()

	for _, payload := range []string{"alert: disk full", `{"id":"free memory too low","state":false}`} {
		resp, err := http.Post(ts.URL+"/", "text/plain", strings.NewReader(payload))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, body)
	}

	assert.Equal(t, []string{"alert: disk full", `{"id":"free memory too low","state":false}`}, recorder.bodies())
	assert.Equal(t, "alert: disk full\n{\"id\":\"free memory too low\",\"state\":false}\n", out.String())
}

func TestServer_ChunkedBodyRejected(t *testing.T) {
	recorder := &recordingSink{}
	ts := httptest.NewServer(NewServer(config.DefaultReceiverConfig(), recorder, testLogger()).Handler())
	defer ts.Close()

	// io.MultiReader скрывает длину, и клиент отправляет тело chunked.
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/", io.MultiReader(strings.NewReader("alert")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusLengthRequired, resp.StatusCode)
	assert.Empty(t, recorder.bodies())
}

func TestServer_RawContentLength(t *testing.T) {
	recorder := &recordingSink{}
	ts := httptest.NewServer(NewServer(config.DefaultReceiverConfig(), recorder, testLogger()).Handler())
	defer ts.Close()

	conn, err := net.Dial("tcp", ts.Listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, "POST / HTTP/1.1\r\nHost: receiver\r\nContent-Length: 16\r\n\r\nalert: disk full")
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(conn), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"alert: disk full"}, recorder.bodies())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	cfg := config.DefaultReceiverConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	recorder := &recordingSink{}
	srv := NewServer(cfg, recorder, testLogger())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(l) }()

	resp, err := http.Post("http://"+l.Addr().String()+"/", "text/plain", strings.NewReader("ping"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	require.NoError(t, <-done)

	assert.Equal(t, []string{"ping"}, recorder.bodies())
}
