package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

const sequenceKeyPrefix = "opseq:"

var _ repository.Sequencer = (*Sequencer)(nil)

// Sequencer entrega números de referencia con INCR, atómico entre réplicas del API.
type Sequencer struct {
	client goredis.UniversalClient
}

// NewSequencer construye el secuenciador sobre un cliente ya conectado.
func NewSequencer(client goredis.UniversalClient) *Sequencer {
	return &Sequencer{client: client}
}

// NewClient abre un cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func sequenceKey(warehouseID string, kind entity.OperationKind) string {
	return sequenceKeyPrefix + warehouseID + ":" + kind.TypeCode()
}

// Next incrementa el contador de (bodega, tipo); la primera llamada devuelve 1.
func (s *Sequencer) Next(ctx context.Context, warehouseID string, kind entity.OperationKind) (int64, error) {
	v, err := s.client.Incr(ctx, sequenceKey(warehouseID, kind)).Result()
	if err != nil {
		return 0, fmt.Errorf("next sequence %s/%s: %w", warehouseID, kind.TypeCode(), err)
	}
	return v, nil
}
