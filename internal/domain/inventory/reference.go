package inventory

import (
	"fmt"

	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// FormatReference construye la referencia {bodega}/{TIPO}/{secuencia de 4 dígitos}.
func FormatReference(warehouseShortCode string, kind entity.OperationKind, seq int64) string {
	return fmt.Sprintf("%s/%s/%04d", warehouseShortCode, kind.TypeCode(), seq)
}
