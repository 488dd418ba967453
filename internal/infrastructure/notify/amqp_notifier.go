package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/pkg/config"
)

var _ inventory.Notifier = (*AMQPNotifier)(nil)

// AMQPNotifier publica eventos de inventario en un topic exchange de RabbitMQ.
// Routing keys: inventory.stock.changed e inventory.stock.low, para que los
// consumidores puedan suscribirse con inventory.stock.* o solo a las alertas.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPNotifier conecta a RabbitMQ y declara el exchange durable.
func NewAMQPNotifier(cfg config.AMQPConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("conectar RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declarar exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

func (n *AMQPNotifier) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	err = n.channel.PublishWithContext(ctx,
		n.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publicar %s: %w", routingKey, err)
	}
	return nil
}

// StockChanged publica el cambio de stock.
func (n *AMQPNotifier) StockChanged(ctx context.Context, ev inventory.StockChangedEvent) error {
	return n.publish(ctx, ChannelStockChanged, ev)
}

// LowStockAlert publica la alerta de stock bajo.
func (n *AMQPNotifier) LowStockAlert(ctx context.Context, ev inventory.LowStockEvent) error {
	return n.publish(ctx, ChannelStockLow, ev)
}

// Close cierra channel y conexión.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
