package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// ApplyDelta calcula el nuevo saldo de la fila. Si OnHand quedaría negativo devuelve
// domain.ErrInsufficientStock y no modifica la fila. FreeToUse siempre refleja OnHand.
func ApplyDelta(bal *entity.StockBalance, delta decimal.Decimal) error {
	next := bal.OnHand.Add(delta)
	if next.IsNegative() {
		return domain.ErrInsufficientStock
	}
	bal.OnHand = next
	bal.FreeToUse = next
	return nil
}
