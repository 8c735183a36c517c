package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.Sequencer = (*SequenceRepo)(nil)

// SequenceRepo contador atómico por (bodega, tipo) en la tabla operation_sequences.
// Usa el pool, no la tx del documento: un número entregado no se reutiliza aunque la creación falle.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el secuenciador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador en una sola sentencia (upsert + RETURNING).
func (r *SequenceRepo) Next(ctx context.Context, warehouseID string, kind entity.OperationKind) (int64, error) {
	var v int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO operation_sequences (warehouse_id, type_code, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (warehouse_id, type_code)
		DO UPDATE SET last_value = operation_sequences.last_value + 1
		RETURNING last_value`, warehouseID, kind.TypeCode()).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s/%s: %w", warehouseID, kind.TypeCode(), err)
	}
	return v, nil
}
