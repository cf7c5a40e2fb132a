package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Channel is the part of *amqp091.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends report-completed events to a topic exchange.
type Publisher struct {
	conn         *amqp091.Connection
	channel      Channel
	exchangeName string
	routingKey   string
	now          func() time.Time
}

var _ portssvc.ReportPublisher = (*Publisher)(nil)

// NewPublisher dials url and declares the exchange.
func NewPublisher(url, exchangeName, routingKey string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewPublisherWithChannel(channel, exchangeName, routingKey)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisherWithChannel declares the exchange on an already open channel.
func NewPublisherWithChannel(channel Channel, exchangeName, routingKey string) (*Publisher, error) {
	err := channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		channel:      channel,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		now:          time.Now,
	}, nil
}

// PublishReport publishes a persistent JSON report-completed message.
func (p *Publisher) PublishReport(ctx context.Context, result *domain.AggregationResult) error {
	msg := NewReportCompletedMessage(result, p.now().UTC())
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Type:         ReportCompletedEvent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Published report completed message",
		slog.String("exchange", p.exchangeName),
		slog.String("routing_key", p.routingKey),
		slog.Int64("records_processed", msg.RecordsProcessed))
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
