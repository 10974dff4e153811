package analytics

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Analytics publishes game events to kafka. A nil *Analytics drops everything.
type Analytics struct {
	writer *kafka.Writer
}

func NewAnalytics(brokers, topic string) *Analytics {
	if brokers == "" || topic == "" {
		return nil
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// game sessions emit while holding their lock
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Printf("[KAFKA] Failed to deliver %d event(s): %v", len(messages), err)
			}
		},
	}
	log.Printf("[KAFKA] Publishing game events to %s on %s", topic, brokers)
	return &Analytics{writer: w}
}

func (a *Analytics) Emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	message, err := encodeEvent(event, payload, time.Now().UTC())
	if err != nil {
		log.Printf("[KAFKA] Could not encode %s event: %v", event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.writer.WriteMessages(ctx, message); err != nil {
		log.Printf("[KAFKA] Emit error: %v", err)
	}
}

func (a *Analytics) Close() error {
	if a == nil || a.writer == nil {
		return nil
	}
	return a.writer.Close()
}

func encodeEvent(event string, payload map[string]any, ts time.Time) (kafka.Message, error) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["event"] = event
	body["ts"] = ts

	b, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{Value: b}
	if id, ok := payload["gameId"].(string); ok {
		msg.Key = []byte(id)
	}
	return msg, nil
}
