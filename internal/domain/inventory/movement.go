package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// SignedDelta aplica la convención de signos por tipo de movimiento:
// receipt suma |q|, delivery resta |q|, adjustment y transfer usan q tal como llega.
func SignedDelta(mt entity.MovementType, qty decimal.Decimal) (decimal.Decimal, error) {
	switch mt {
	case entity.MovementTypeReceipt:
		return qty.Abs(), nil
	case entity.MovementTypeDelivery:
		return qty.Abs().Neg(), nil
	case entity.MovementTypeAdjustment, entity.MovementTypeTransfer:
		return qty, nil
	}
	return decimal.Zero, domain.Invalid("movement_type", "tipo de movimiento desconocido: "+string(mt))
}

// Movement es un movimiento planificado sobre un par (producto, ubicación).
// Quantity se expresa como la recibe el aplicador (ver SignedDelta).
type Movement struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	Type       entity.MovementType
}

// PlanMovements deriva, de forma determinista, los movimientos que produce el paso a done.
// Los traslados generan dos movimientos por línea: salida del origen y entrada al destino.
func PlanMovements(doc *entity.OperationDocument) ([]Movement, error) {
	mt := doc.Kind.MovementType()
	out := make([]Movement, 0, len(doc.Lines)*2)
	for _, l := range doc.Lines {
		switch doc.Kind {
		case entity.OperationReceipt:
			out = append(out, Movement{ProductID: l.ProductID, LocationID: doc.ToLocationID, Quantity: l.Quantity, Type: mt})
		case entity.OperationDelivery:
			out = append(out, Movement{ProductID: l.ProductID, LocationID: doc.FromLocationID, Quantity: l.Quantity, Type: mt})
		case entity.OperationTransfer:
			out = append(out,
				Movement{ProductID: l.ProductID, LocationID: doc.FromLocationID, Quantity: l.Quantity.Neg(), Type: mt},
				Movement{ProductID: l.ProductID, LocationID: doc.ToLocationID, Quantity: l.Quantity, Type: mt},
			)
		case entity.OperationAdjustment:
			out = append(out, Movement{ProductID: l.ProductID, LocationID: doc.LocationID, Quantity: l.Quantity, Type: mt})
		default:
			return nil, domain.Invalid("kind", "tipo de documento desconocido: "+string(doc.Kind))
		}
	}
	return out, nil
}

// BalanceKey identifica una fila de StockBalance.
type BalanceKey struct {
	ProductID  string
	LocationID string
}

// LockOrder devuelve las claves distintas tocadas por los movimientos, ordenadas por ubicación y
// producto. Bloquear siempre en este orden evita interbloqueos entre documentos concurrentes.
func LockOrder(movs []Movement) []BalanceKey {
	seen := make(map[BalanceKey]struct{}, len(movs))
	keys := make([]BalanceKey, 0, len(movs))
	for _, m := range movs {
		k := BalanceKey{ProductID: m.ProductID, LocationID: m.LocationID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].LocationID != keys[j].LocationID {
			return keys[i].LocationID < keys[j].LocationID
		}
		return keys[i].ProductID < keys[j].ProductID
	})
	return keys
}

// MarkFulfilled fija la cantidad cumplida de cada línea igual a la planificada.
func MarkFulfilled(doc *entity.OperationDocument) {
	for i := range doc.Lines {
		doc.Lines[i].FulfilledQuantity = doc.Lines[i].Quantity
	}
}
