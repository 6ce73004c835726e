//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

// startKafka launches a single-node Kafka container and returns its
// broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic via the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
