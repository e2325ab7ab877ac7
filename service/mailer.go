package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abotl/abotl-backend/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// Mailer enqueues outbound email jobs. Actual SMTP delivery happens in a
// separate consumer, so a broker outage never blocks registration.
type Mailer interface {
	SendWelcome(ctx context.Context, to, username string) error
}

type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type KafkaMailer struct {
	writer *kafka.Writer
}

func NewKafkaMailer(brokers []string, topic string) *KafkaMailer {
	return &KafkaMailer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (m *KafkaMailer) SendWelcome(ctx context.Context, to, username string) error {
	job := EmailJob{
		To:      to,
		Subject: "Welcome to ABOTL",
		Text:    fmt.Sprintf("Hi %s, your account is ready.", username),
		HTML:    fmt.Sprintf("<p>Hi <b>%s</b>, your account is ready.</p>", username),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	err = m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to),
		Value: payload,
	})
	if err != nil {
		metrics.EmailJobsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.EmailJobsTotal.WithLabelValues("queued").Inc()
	return nil
}

func (m *KafkaMailer) Close() error {
	return m.writer.Close()
}
