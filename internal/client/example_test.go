package client_test

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/chestorix/hawkmon/internal/client"
	"github.com/chestorix/hawkmon/internal/hawkulartest"
	"github.com/chestorix/hawkmon/internal/models"
)

func ExampleClient_QueryMetric() {
	backend := hawkulartest.NewServer()
	defer backend.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := client.New(backend.ClientConfig("python_test"), logger)
	ctx := context.Background()

	// Записываем одну точку и читаем её обратно
	if err := c.Push(ctx, models.Gauge, "cpu.load", 42.5, 1700000000000); err != nil {
		fmt.Printf("Error pushing metric: %v\n", err)
		return
	}

	points, err := c.QueryMetric(ctx, models.Gauge, "cpu.load", 1699999999000, 1700000001000)
	if err != nil {
		fmt.Printf("Error querying metric: %v\n", err)
		return
	}
	for _, p := range points {
		fmt.Println(p.Timestamp, p.Value)
	}
	// Output: 1700000000000 42.5
}

func ExampleClient_QueryStatus() {
	backend := hawkulartest.NewServer()
	defer backend.Close()

	c := client.New(backend.ClientConfig("python_test"), nil)
	status, err := c.QueryStatus(context.Background())
	if err != nil {
		fmt.Printf("Error querying status: %v\n", err)
		return
	}

	fmt.Println(status.Started(), status.Version())
	// Output: true 0.21.0
}
