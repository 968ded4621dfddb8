package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/JoaquinVilchez/business-manager-api/config"
	"github.com/JoaquinVilchez/business-manager-api/internal/application"
	"github.com/JoaquinVilchez/business-manager-api/pkg/helpers"
)

// event_worker drains the domain event queue into the structured log.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-events", cfg.Env)

	if !cfg.EventsEnabled {
		logger.Info("EVENTS_ENABLED=false; event worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEventsQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev application.Event
			if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.Name == "" {
				logger.WithField("message_id", msg.MessageId).Warn("dropping malformed event")
				_ = msg.Nack(false, false)
				continue
			}
			logger.WithFields(logrus.Fields{
				"event":       ev.Name,
				"entity":      ev.Entity,
				"id":          ev.ID,
				"occurred_at": ev.OccurredAt,
				"message_id":  msg.MessageId,
			}).Info("domain event")
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
