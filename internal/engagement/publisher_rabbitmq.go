// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitConfig configures [NewRabbitPublisher].
type RabbitConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// RabbitPublisher publishes [PlayEvent] messages to a durable direct exchange.
type RabbitPublisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

// NewRabbitPublisher dials RabbitMQ and declares the exchange, queue and binding.
func NewRabbitPublisher(config RabbitConfig, logger *slog.Logger) (*RabbitPublisher, error) {
	connection, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq_dial_failed: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("rabbitmq_channel_failed: %w", err)
	}

	fail := func(step string, cause error) (*RabbitPublisher, error) {
		_ = channel.Close()
		_ = connection.Close()
		return nil, fmt.Errorf("rabbitmq_%s_failed: %w", step, cause)
	}

	if err := channel.ExchangeDeclare(config.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fail("exchange_declare", err)
	}

	queue, err := channel.QueueDeclare(config.QueueName, true, false, false, false, nil)
	if err != nil {
		return fail("queue_declare", err)
	}

	if err := channel.QueueBind(queue.Name, config.RoutingKey, config.Exchange, false, nil); err != nil {
		return fail("queue_bind", err)
	}

	logger.Info("rabbitmq_publisher_connected",
		slog.String("exchange", config.Exchange),
		slog.String("queue", queue.Name),
		slog.String("routing_key", config.RoutingKey),
	)

	return &RabbitPublisher{
		connection: connection,
		channel:    channel,
		exchange:   config.Exchange,
		routingKey: config.RoutingKey,
		logger:     logger,
	}, nil
}

// Publish sends event as a persistent JSON message.
func (publisher *RabbitPublisher) Publish(ctx context.Context, event PlayEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq_encode_failed: %w", err)
	}

	err = publisher.channel.PublishWithContext(ctx, publisher.exchange, publisher.routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.Type,
		MessageId:    event.HistoryID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq_publish_failed: %w", err)
	}

	publisher.logger.DebugContext(ctx, "play_event_published",
		slog.String("history_id", event.HistoryID),
		slog.Int64("story_id", event.StoryID),
	)
	return nil
}

// Close releases the channel and the connection.
func (publisher *RabbitPublisher) Close() error {
	if publisher.channel != nil {
		_ = publisher.channel.Close()
	}
	if publisher.connection != nil {
		return publisher.connection.Close()
	}
	return nil
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, PlayEvent) error { return nil }
func (NopPublisher) Close() error                             { return nil }
