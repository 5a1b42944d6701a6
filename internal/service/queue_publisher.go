package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/MuhsinADA/ese-backend/internal/queue"
)

// PublishEmail hands an outbound email event to the broker. Errors
// are logged and returned so callers can ignore them; a failed
// publish never aborts the request that produced it. Messages are
// durable so they survive broker restarts.
func PublishEmail(ctx context.Context, event q.OutboundEmailEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(q.EmailQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	if event.QueuedAt == "" {
		event.QueuedAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = ch.PublishWithContext(pubCtx, "", q.EmailQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
	return err
}
