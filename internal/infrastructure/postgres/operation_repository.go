package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
	"github.com/jhoicas/stock-engine/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo persiste documentos de operación (operation_documents + operation_lines).
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador.
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const referenceConstraint = "operation_documents_reference_key"

const documentColumns = `id, kind, reference, status, warehouse_id, contact,
	COALESCE(from_location_id::text, ''), COALESCE(to_location_id::text, ''), COALESCE(location_id::text, ''),
	delivery_address, schedule_date, COALESCE(reason, ''), responsible, created_by, created_at, updated_at, done_at`

func scanDocument(row pgx.Row) (*entity.OperationDocument, error) {
	var (
		d                    entity.OperationDocument
		kind, status, reason string
		schedule, doneAt     *time.Time
	)
	err := row.Scan(&d.ID, &kind, &d.Reference, &status, &d.WarehouseID, &d.Contact,
		&d.FromLocationID, &d.ToLocationID, &d.LocationID, &d.DeliveryAddress, &schedule, &reason,
		&d.Responsible, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &doneAt)
	if err != nil {
		return nil, err
	}
	d.Kind = entity.OperationKind(kind)
	d.Status = entity.OperationStatus(status)
	d.Reason = entity.AdjustmentReason(reason)
	d.ScheduleDate, d.DoneAt = schedule, doneAt
	return &d, nil
}

// Create inserta cabecera y líneas en un solo batch.
func (r *OperationRepo) Create(ctx context.Context, d *entity.OperationDocument) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO operation_documents (id, kind, reference, status, warehouse_id, contact, from_location_id,
			to_location_id, location_id, delivery_address, schedule_date, reason, responsible, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		d.ID, string(d.Kind), d.Reference, string(d.Status), d.WarehouseID, d.Contact,
		nullIfEmpty(d.FromLocationID), nullIfEmpty(d.ToLocationID), nullIfEmpty(d.LocationID),
		d.DeliveryAddress, d.ScheduleDate, nullIfEmpty(string(d.Reason)), d.Responsible, d.CreatedBy,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if name, _ := violatedConstraint(err); isUniqueViolation(err) && name == referenceConstraint {
			return fmt.Errorf("%s: %w", d.Reference, domain.ErrDuplicateReference)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert operation: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert operation: %w", err)
	}

	batch := &pgx.Batch{}
	for _, l := range d.Lines {
		batch.Queue(`
			INSERT INTO operation_lines (id, document_id, position, product_id, quantity, fulfilled_quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, d.ID, l.Position, l.ProductID, l.Quantity, l.FulfilledQuantity,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range d.Lines {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("insert operation line: %w", err)
		}
	}
	return nil
}

func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.OperationDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM operation_documents WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; las transiciones concurrentes del mismo documento se serializan aquí.
func (r *OperationRepo) GetForUpdate(ctx context.Context, id string) (*entity.OperationDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM operation_documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *OperationRepo) get(ctx context.Context, query, id string) (*entity.OperationDocument, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	lines, err := r.lines(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Lines = lines[d.ID]
	return d, nil
}

func (r *OperationRepo) lines(ctx context.Context, ids []string) (map[string][]entity.OperationLine, error) {
	out := make(map[string][]entity.OperationLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, position, product_id, quantity, fulfilled_quantity
		FROM operation_lines WHERE document_id = ANY($1::uuid[])
		ORDER BY document_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list operation lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OperationLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &l.ProductID, &l.Quantity, &l.FulfilledQuantity); err != nil {
			return nil, fmt.Errorf("scan operation line: %w", err)
		}
		out[l.DocumentID] = append(out[l.DocumentID], l)
	}
	return out, rows.Err()
}

// SaveTransition actualiza estado y fechas, y las cantidades cumplidas de las líneas.
func (r *OperationRepo) SaveTransition(ctx context.Context, d *entity.OperationDocument) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE operation_documents SET status = $2, updated_at = $3, done_at = $4 WHERE id = $1`,
		d.ID, string(d.Status), d.UpdatedAt, d.DoneAt,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	if d.Status != entity.StatusDone {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range d.Lines {
		batch.Queue(`UPDATE operation_lines SET fulfilled_quantity = $2 WHERE id = $1`, l.ID, l.FulfilledQuantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range d.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("update operation line: %w", err)
		}
	}
	return nil
}

func (r *OperationRepo) List(ctx context.Context, of repository.OperationFilter) ([]*entity.OperationDocument, error) {
	f := &filter{}
	if of.Kind != "" {
		f.add("kind = $%d", string(of.Kind))
	}
	if of.Status != "" {
		f.add("status = $%d", string(of.Status))
	}
	if of.WarehouseID != "" {
		f.add("warehouse_id = $%d", of.WarehouseID)
	}
	query := `SELECT ` + documentColumns + ` FROM operation_documents` + f.where() +
		` ORDER BY created_at DESC, reference DESC`
	query += f.page(of.Limit, of.Skip)
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	docs := make([]*entity.OperationDocument, 0)
	ids := make([]string, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		docs = append(docs, d)
		ids = append(ids, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		d.Lines = lines[d.ID]
	}
	return docs, nil
}

// Delete elimina el documento; las líneas caen por ON DELETE CASCADE.
func (r *OperationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM operation_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
