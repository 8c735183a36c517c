package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.Sequencer = (*Sequencer)(nil)

// Sequencer contador por (bodega, tipo) protegido por su propio mutex, independiente de las
// transacciones del Store: un número entregado no se devuelve aunque la transacción falle.
type Sequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequencer crea un secuenciador vacío.
func NewSequencer() *Sequencer {
	return &Sequencer{counters: make(map[string]int64)}
}

func (s *Sequencer) Next(ctx context.Context, warehouseID string, kind entity.OperationKind) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := warehouseID + ":" + kind.TypeCode()
	s.counters[key]++
	return s.counters[key], nil
}
