package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/inventory"
)

// MovementApplier es el único punto por el que pasa cualquier cambio de stock: actualiza una fila
// de StockBalance y agrega una entrada al ledger con la misma foto del saldo.
type MovementApplier struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewMovementApplier construye el aplicador.
func NewMovementApplier(txRunner TxRunner) *MovementApplier {
	return &MovementApplier{txRunner: txRunner, now: time.Now}
}

// MovementInput datos de un movimiento. Quantity sigue la convención de signos de
// inventory.SignedDelta. WarehouseID es opcional: si llega, debe coincidir con la bodega de la ubicación.
type MovementInput struct {
	ProductID    string
	LocationID   string
	WarehouseID  string
	Quantity     decimal.Decimal
	MovementType entity.MovementType
	Reference    string
	DocumentID   string
	Responsible  string
	Date         *time.Time
}

// MovementResult saldo resultante y entrada agregada al ledger.
type MovementResult struct {
	OnHand    decimal.Decimal
	FreeToUse decimal.Decimal
	Entry     *entity.StockLedgerEntry
}

// Apply aplica un movimiento aislado en su propia transacción.
func (a *MovementApplier) Apply(ctx context.Context, in MovementInput) (*MovementResult, error) {
	var res *MovementResult
	err := a.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var err error
		res, err = a.ApplyMovement(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyMovement aplica el movimiento usando los repositorios de la transacción del caller.
// Si el saldo quedaría negativo devuelve domain.ErrInsufficientStock sin escribir nada.
func (a *MovementApplier) ApplyMovement(ctx context.Context, repos Repos, in MovementInput) (*MovementResult, error) {
	if !in.MovementType.IsValid() {
		return nil, domain.Invalid("movement_type", "tipo de movimiento desconocido: "+string(in.MovementType))
	}
	delta, err := inventory.SignedDelta(in.MovementType, in.Quantity)
	if err != nil {
		return nil, err
	}
	if delta.IsZero() {
		return nil, domain.Invalid("quantity", "la cantidad del movimiento no puede ser cero")
	}

	product, err := repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("movimiento: obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	location, err := repos.Locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, fmt.Errorf("movimiento: obtener ubicación: %w", err)
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	// La bodega siempre se resuelve desde la ubicación.
	if in.WarehouseID != "" && in.WarehouseID != location.WarehouseID {
		return nil, domain.Invalid("warehouse_id", "la ubicación no pertenece a la bodega indicada")
	}

	bal, err := repos.Stock.GetOrCreate(ctx, product.ID, location.ID, location.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("movimiento: bloquear saldo: %w", err)
	}
	if bal.WarehouseID != location.WarehouseID {
		return nil, fmt.Errorf("saldo %s/%s registra bodega %s, la ubicación pertenece a %s: %w",
			product.SKU, location.ShortCode, bal.WarehouseID, location.WarehouseID, domain.ErrConflict)
	}
	before := bal.OnHand
	if err := inventory.ApplyDelta(bal, delta); err != nil {
		return nil, fmt.Errorf("%w: %s en %s (disponible %s, movimiento %s)",
			err, product.SKU, location.ShortCode, before.String(), delta.String())
	}

	now := a.now()
	bal.UpdatedAt = now
	if err := repos.Stock.Save(ctx, bal); err != nil {
		return nil, fmt.Errorf("movimiento: guardar saldo: %w", err)
	}

	date := now
	if in.Date != nil {
		date = *in.Date
	}
	entry := &entity.StockLedgerEntry{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		LocationID:   location.ID,
		WarehouseID:  location.WarehouseID,
		Quantity:     delta,
		OnHand:       bal.OnHand,
		FreeToUse:    bal.FreeToUse,
		UnitCost:     product.Cost,
		TotalCost:    delta.Mul(product.Cost),
		MovementType: in.MovementType,
		Reference:    in.Reference,
		DocumentID:   in.DocumentID,
		Date:         date,
		Responsible:  in.Responsible,
		CreatedAt:    now,
	}
	if err := repos.Ledger.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("movimiento: registrar en ledger: %w", err)
	}
	return &MovementResult{OnHand: bal.OnHand, FreeToUse: bal.FreeToUse, Entry: entry}, nil
}
