package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hangarline/avwx-etl/internal/config"
	"github.com/hangarline/avwx-etl/internal/domain"
)

// Writer produces enriched weather records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishObservation serializes one enriched METAR to the sink topic,
// keyed by station so updates for one station stay in order.
func (w *Writer) PublishObservation(ctx context.Context, obs domain.EnrichedObservation) error {
	msg, err := observationMessage(obs)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// PublishForecast serializes one enriched TAF to the sink topic.
func (w *Writer) PublishForecast(ctx context.Context, fc domain.EnrichedForecast) error {
	msg, err := forecastMessage(fc)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func observationMessage(obs domain.EnrichedObservation) (kafkago.Message, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}
	return kafkago.Message{
		Key:     []byte(obs.StationID),
		Value:   data,
		Headers: recordHeaders(obs.StationID, "metar", obs.ProcessedAt),
	}, nil
}

func forecastMessage(fc domain.EnrichedForecast) (kafkago.Message, error) {
	data, err := json.Marshal(fc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast: %w", err)
	}
	return kafkago.Message{
		Key:     []byte(fc.StationID),
		Value:   data,
		Headers: recordHeaders(fc.StationID, "taf", fc.ProcessedAt),
	}, nil
}

func recordHeaders(stationID, product string, processedAt time.Time) []kafkago.Header {
	return []kafkago.Header{
		{Key: "station", Value: []byte(stationID)},
		{Key: "product", Value: []byte(product)},
		{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
	}
}
