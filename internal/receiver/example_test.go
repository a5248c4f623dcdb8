package receiver_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/config"
	"github.com/chestorix/hawkmon/internal/receiver"
)

func ExampleServer() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := receiver.NewServer(config.DefaultReceiverConfig(), receiver.WriterSink{W: os.Stdout}, logger)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// Отправляем уведомление, как это делает Mohawk при смене состояния алерта
	res, err := http.Post(ts.URL+"/", "text/plain", strings.NewReader("alert: disk full"))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		return
	}
	defer res.Body.Close()

	fmt.Println(res.Status)
	// Output:
	// alert: disk full
	// 200 OK
}
