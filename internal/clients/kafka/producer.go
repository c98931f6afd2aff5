package kafka

import (
	"encoding/json"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/logger"
)

type producerConfig interface {
	Brokers() []string
	ReportsTopic() string
}

// ReportRequest asks the reporter worker to render one report. Requested
// pins the reference instant so the worker resolves the same date windows the
// requester saw.
type ReportRequest struct {
	Period    string    `json:"period"`
	Category  string    `json:"category"`
	Requested time.Time `json:"requested"`
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	return &Producer{
		producer: producer,
		topic:    cfg.ReportsTopic(),
	}, err
}

func (p *Producer) RequestReport(req ReportRequest) error {
	message, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshalling report request")
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(message),
	})
	return errors.Wrap(err, "producing report request")
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}
