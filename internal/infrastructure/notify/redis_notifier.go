package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/pkg/config"
)

// Canales de pub/sub. Los suscriptores (dashboards, workers de alertas)
// se enganchan a estos nombres.
const (
	ChannelStockChanged = "inventory.stock.changed"
	ChannelStockLow     = "inventory.stock.low"
)

var _ inventory.Notifier = (*RedisNotifier)(nil)

// RedisNotifier publica eventos de inventario por Redis PUBLISH en formato JSON.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier construye el emisor y verifica la conexión con PING.
func NewRedisNotifier(ctx context.Context, cfg config.RedisConfig) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisNotifier{client: client}, nil
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := n.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// StockChanged publica el cambio de stock en el canal de cambios.
func (n *RedisNotifier) StockChanged(ctx context.Context, ev inventory.StockChangedEvent) error {
	return n.publish(ctx, ChannelStockChanged, ev)
}

// LowStockAlert publica la alerta de stock bajo en el canal de alertas.
func (n *RedisNotifier) LowStockAlert(ctx context.Context, ev inventory.LowStockEvent) error {
	return n.publish(ctx, ChannelStockLow, ev)
}

// Close cierra el cliente Redis.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
