package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/inventory"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
	"github.com/jhoicas/stock-engine/pkg/logger"
)

// OperationService es dueño del ciclo de vida de los documentos de operación y de la frontera
// transaccional del paso a done: estado del documento, saldos y ledger se confirman juntos o no se confirman.
type OperationService struct {
	txRunner  TxRunner
	repos     Repos
	sequencer repository.Sequencer
	applier   *MovementApplier
	log       *logger.Logger
	now       func() time.Time
}

// NewOperationService construye el servicio. repos se usa para lecturas fuera de transacción.
func NewOperationService(
	txRunner TxRunner,
	repos Repos,
	sequencer repository.Sequencer,
	applier *MovementApplier,
	log *logger.Logger,
) *OperationService {
	return &OperationService{
		txRunner:  txRunner,
		repos:     repos,
		sequencer: sequencer,
		applier:   applier,
		log:       log,
		now:       time.Now,
	}
}

// LineInput línea solicitada al crear un documento.
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateOperationInput entrada para crear un documento. Solo se leen los campos de cabecera
// que corresponden a Kind (ver entity.OperationDocument).
type CreateOperationInput struct {
	Kind            entity.OperationKind
	Contact         string
	FromLocationID  string
	ToLocationID    string
	LocationID      string
	DeliveryAddress string
	ScheduleDate    *time.Time
	Reason          entity.AdjustmentReason
	Responsible     string
	CreatedBy       string
	Lines           []LineInput
}

// Create valida la entrada, genera la referencia y guarda el documento en draft.
func (s *OperationService) Create(ctx context.Context, in CreateOperationInput) (*entity.OperationDocument, error) {
	now := s.now()
	doc := &entity.OperationDocument{
		ID:              uuid.New().String(),
		Kind:            in.Kind,
		Status:          entity.StatusDraft,
		Contact:         strings.TrimSpace(in.Contact),
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		ScheduleDate:    in.ScheduleDate,
		Responsible:     strings.TrimSpace(in.Responsible),
		CreatedBy:       in.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	switch in.Kind {
	case entity.OperationReceipt:
		doc.ToLocationID = in.ToLocationID
	case entity.OperationDelivery:
		doc.FromLocationID = in.FromLocationID
	case entity.OperationTransfer:
		doc.FromLocationID = in.FromLocationID
		doc.ToLocationID = in.ToLocationID
	case entity.OperationAdjustment:
		doc.LocationID = in.LocationID
		doc.Reason = in.Reason
		doc.ScheduleDate = nil
	}
	if doc.Responsible == "" {
		doc.Responsible = in.CreatedBy
	}
	doc.Lines = make([]entity.OperationLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		doc.Lines = append(doc.Lines, entity.OperationLine{
			ID:                uuid.New().String(),
			DocumentID:        doc.ID,
			Position:          i + 1,
			ProductID:         l.ProductID,
			Quantity:          l.Quantity,
			FulfilledQuantity: decimal.Zero,
		})
	}
	if err := inventory.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := s.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		var anchor *entity.Location
		for _, id := range doc.LocationIDs() {
			loc, err := repos.Locations.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("crear operación: obtener ubicación: %w", err)
			}
			if loc == nil {
				return domain.ErrLocationNotFound
			}
			if id == doc.AnchorLocationID() {
				anchor = loc
			}
		}
		for _, l := range doc.Lines {
			p, err := repos.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return fmt.Errorf("crear operación: obtener producto: %w", err)
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
		}
		wh, err := repos.Warehouses.GetByID(ctx, anchor.WarehouseID)
		if err != nil {
			return fmt.Errorf("crear operación: obtener bodega: %w", err)
		}
		if wh == nil {
			return domain.ErrWarehouseNotFound
		}

		seq, err := s.sequencer.Next(ctx, wh.ID, doc.Kind)
		if err != nil {
			return fmt.Errorf("crear operación: secuencia: %w", err)
		}
		doc.WarehouseID = wh.ID
		doc.Reference = inventory.FormatReference(wh.ShortCode, doc.Kind, seq)
		return repos.Operations.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("document_id", doc.ID).
		Str("reference", doc.Reference).
		Str("type", string(doc.Kind)).
		Int("lines", len(doc.Lines)).
		Msg("documento de operación creado")
	return doc, nil
}

// ChangeStatus aplica una transición del documento. El paso a done aplica todos los movimientos
// de las líneas en la misma transacción que el cambio de estado; ante cualquier error el documento
// queda en su estado anterior y no se escribe stock ni ledger.
func (s *OperationService) ChangeStatus(
	ctx context.Context,
	documentID string,
	target entity.OperationStatus,
	actor string,
) (*entity.OperationDocument, error) {
	var (
		out  *entity.OperationDocument
		from entity.OperationStatus
		ref  string
	)
	err := s.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Operations.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("cambiar estado: obtener documento: %w", err)
		}
		if doc == nil {
			return domain.ErrDocumentNotFound
		}
		from, ref = doc.Status, doc.Reference
		if err := inventory.Transition(doc, target); err != nil {
			return fmt.Errorf("%s %s -> %s: %w", doc.Reference, from, target, err)
		}
		now := s.now()
		doc.UpdatedAt = now
		if target == entity.StatusDone {
			if err := s.applyDone(ctx, repos, doc, actor, now); err != nil {
				return err
			}
		}
		if err := repos.Operations.SaveTransition(ctx, doc); err != nil {
			return fmt.Errorf("cambiar estado: guardar documento: %w", err)
		}
		out = doc
		return nil
	})
	if err != nil {
		if target == entity.StatusDone {
			s.log.Warn().Err(err).
				Str("document_id", documentID).
				Str("reference", ref).
				Msg("no se pudo completar el documento")
		}
		return nil, err
	}
	s.log.Info().
		Str("document_id", out.ID).
		Str("reference", out.Reference).
		Str("from", string(from)).
		Str("to", string(out.Status)).
		Str("actor", actor).
		Msg("transición de estado")
	return out, nil
}

// applyDone bloquea los saldos involucrados en orden determinista y aplica los movimientos planificados.
func (s *OperationService) applyDone(
	ctx context.Context,
	repos Repos,
	doc *entity.OperationDocument,
	actor string,
	now time.Time,
) error {
	movs, err := inventory.PlanMovements(doc)
	if err != nil {
		return err
	}

	warehouses := make(map[string]string, 2)
	for _, k := range inventory.LockOrder(movs) {
		whID, ok := warehouses[k.LocationID]
		if !ok {
			loc, err := repos.Locations.GetByID(ctx, k.LocationID)
			if err != nil {
				return fmt.Errorf("completar documento: obtener ubicación: %w", err)
			}
			if loc == nil {
				return domain.ErrLocationNotFound
			}
			whID = loc.WarehouseID
			warehouses[k.LocationID] = whID
		}
		p, err := repos.Products.GetByID(ctx, k.ProductID)
		if err != nil {
			return fmt.Errorf("completar documento: obtener producto: %w", err)
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if _, err := repos.Stock.GetOrCreate(ctx, k.ProductID, k.LocationID, whID); err != nil {
			return fmt.Errorf("completar documento: bloquear saldo: %w", err)
		}
	}

	responsible := doc.Responsible
	if responsible == "" {
		responsible = actor
	}
	for _, m := range movs {
		_, err := s.applier.ApplyMovement(ctx, repos, MovementInput{
			ProductID:    m.ProductID,
			LocationID:   m.LocationID,
			Quantity:     m.Quantity,
			MovementType: m.Type,
			Reference:    doc.Reference,
			DocumentID:   doc.ID,
			Responsible:  responsible,
			Date:         &now,
		})
		if err != nil {
			return err
		}
	}
	inventory.MarkFulfilled(doc)
	doc.DoneAt = &now
	return nil
}

// Delete elimina un documento en draft, waiting o ready. Los documentos done o canceled
// forman parte del historial y devuelven domain.ErrInvalidState.
func (s *OperationService) Delete(ctx context.Context, documentID string) error {
	return s.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		doc, err := repos.Operations.GetForUpdate(ctx, documentID)
		if err != nil {
			return fmt.Errorf("eliminar operación: %w", err)
		}
		if doc == nil {
			return domain.ErrDocumentNotFound
		}
		if !doc.Status.CanDelete() {
			return fmt.Errorf("%s está en estado %s: %w", doc.Reference, doc.Status, domain.ErrInvalidState)
		}
		return repos.Operations.Delete(ctx, documentID)
	})
}

// Get devuelve el documento con sus líneas.
func (s *OperationService) Get(ctx context.Context, documentID string) (*entity.OperationDocument, error) {
	doc, err := s.repos.Operations.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("obtener operación: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// List lista documentos, más recientes primero.
func (s *OperationService) List(ctx context.Context, filter repository.OperationFilter) ([]*entity.OperationDocument, error) {
	if filter.Kind != "" && !filter.Kind.IsValid() {
		return nil, domain.Invalid("type", "tipo de documento desconocido")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.Invalid("status", "estado desconocido")
	}
	filter.Limit, filter.Skip = normalizePage(filter.Limit, filter.Skip)
	return s.repos.Operations.List(ctx, filter)
}
