package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"vehicle-forecast-api/config"
	"vehicle-forecast-api/metrics"
	"vehicle-forecast-api/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IngestPayload is one yearly count published on the MQTT topic.
type IngestPayload struct {
	Tahun int    `json:"tahun"`
	Mobil *int64 `json:"mobil"`
	Motor *int64 `json:"motor"`
}

// Ingestor upserts historical records received over MQTT.
type Ingestor struct {
	records *HistoricalService
}

func NewIngestor(records *HistoricalService) *Ingestor {
	return &Ingestor{records: records}
}

func (in *Ingestor) ProcessMessage(ctx context.Context, payloadRaw []byte) error {
	metrics.IngestReceived.Inc()

	var payload IngestPayload
	if err := json.Unmarshal(payloadRaw, &payload); err != nil {
		metrics.IngestFailed.Inc()
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.Mobil == nil || payload.Motor == nil {
		metrics.IngestFailed.Inc()
		return fmt.Errorf("%w: mobil and motor are required", ErrInvalidRecord)
	}

	rec := models.HistoricalRecord{Tahun: payload.Tahun, Mobil: *payload.Mobil, Motor: *payload.Motor}
	if _, err := in.records.Upsert(ctx, rec); err != nil {
		metrics.IngestFailed.Inc()
		return fmt.Errorf("store tahun=%d: %w", rec.Tahun, err)
	}

	metrics.IngestStored.Inc()
	return nil
}

// Run connects to the broker and processes messages until ctx is cancelled.
func (in *Ingestor) Run(ctx context.Context, cfg config.MQTTConfig) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.URL)
	opts.SetClientID("vehicle-forecast-" + time.Now().Format("20060102150405"))
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetDefaultPublishHandler(func(client mqtt.Client, message mqtt.Message) {
		if err := in.ProcessMessage(ctx, message.Payload()); err != nil {
			log.Printf("ingest topic=%s: %v", message.Topic(), err)
		}
	})
	opts.OnConnect = func(client mqtt.Client) {
		token := client.Subscribe(cfg.Topic, 1, nil)
		token.Wait()
		if token.Error() != nil {
			log.Printf("mqtt subscribe error: %v", token.Error())
			return
		}
		log.Printf("ingest subscribed to topic=%s", cfg.Topic)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("mqtt connection lost: %v", err)
	}

	client := mqtt.NewClient(opts)
	// With connect retry the token only completes once the broker is reached.
	token := client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return fmt.Errorf("mqtt connection failed: %w", token.Error())
		}
	case <-ctx.Done():
		client.Disconnect(250)
		return nil
	}
	log.Printf("ingest running, mqtt=%s", cfg.URL)

	<-ctx.Done()
	log.Printf("ingest shutting down")
	client.Disconnect(250)
	return nil
}
