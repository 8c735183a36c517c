package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// violatedConstraint devuelve el nombre del constraint y el código SQLSTATE de un *pgconn.PgError.
func violatedConstraint(err error) (name, code string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code
	}
	return "", ""
}

// isForeignKeyViolation 23503.
func isForeignKeyViolation(err error) bool {
	_, code := violatedConstraint(err)
	return code == "23503"
}

// isCheckViolation 23514.
func isCheckViolation(err error) bool {
	_, code := violatedConstraint(err)
	return code == "23514"
}

// nullIfEmpty mapea "" a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// filter arma cláusulas WHERE con placeholders numerados.
type filter struct {
	conds []string
	args  []any
}

// add agrega una condición; cond usa %d donde va el número del placeholder.
func (f *filter) add(cond string, arg any) {
	f.args = append(f.args, arg)
	f.conds = append(f.conds, fmt.Sprintf(cond, len(f.args)))
}

// raw agrega una condición sin argumentos.
func (f *filter) raw(cond string) {
	f.conds = append(f.conds, cond)
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page agrega LIMIT/OFFSET si limit > 0.
func (f *filter) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	f.args = append(f.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(f.args)-1, len(f.args))
}
