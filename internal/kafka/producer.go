package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"studio-admin/internal/logger"
	"studio-admin/internal/models"
)

// Topics carries the topic names for the admin's order lifecycle events.
type Topics struct {
	OrderCompleted string
	OrderCanceled  string
}

type Producer struct {
	Writer *kafka.Writer
	Topics Topics
	Logger *logger.Logger
}

func NewProducer(brokers []string, topics Topics, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer, Topics: topics, Logger: log}
}

// orderEvent is the wire shape downstream consumers (notifications,
// bookkeeping) read. Payment internals stay out of the stream.
type orderEvent struct {
	OrderID     string    `json:"orderId"`
	Customer    string    `json:"customer"`
	Email       string    `json:"email"`
	PlanID      string    `json:"planId"`
	Price       float64   `json:"price"`
	DownPayment float64   `json:"downPayment"`
	ActorID     string    `json:"actorId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func eventFromOrder(order models.Order, actorID string) orderEvent {
	return orderEvent{
		OrderID:     order.ID,
		Customer:    order.User.Name,
		Email:       order.User.Email,
		PlanID:      order.PlanID,
		Price:       order.Price,
		DownPayment: order.DownPayment,
		ActorID:     actorID,
		OccurredAt:  time.Now(),
	}
}

// PublishOrderCompleted streams the completed transition to Kafka.
func (p *Producer) PublishOrderCompleted(order models.Order) error {
	return p.publish(p.Topics.OrderCompleted, eventFromOrder(order, order.CompletedBy))
}

// PublishOrderCanceled streams the canceled transition to Kafka.
func (p *Producer) PublishOrderCanceled(order models.Order) error {
	return p.publish(p.Topics.OrderCanceled, eventFromOrder(order, order.CanceledBy))
}

func (p *Producer) publish(topic string, event orderEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.Logger.LogKafka("PUBLISH", topic, fmt.Sprintf("order %s", event.OrderID))

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(event.OrderID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NoopPublisher is wired when Kafka is disabled. Transitions still
// succeed, they just are not streamed.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCompleted(models.Order) error { return nil }
func (NoopPublisher) PublishOrderCanceled(models.Order) error  { return nil }
