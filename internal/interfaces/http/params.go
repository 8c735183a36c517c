package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-engine/internal/domain"
)

// isUUID acepta solo la forma canónica de 36 caracteres.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// pathID devuelve una copia de :id. Fiber reutiliza el buffer de la petición, así que un valor que
// llega a un repositorio nunca puede ser el string original. Un id que no es UUID no existe.
func pathID(c *fiber.Ctx) (string, error) {
	id := utils.CopyString(c.Params("id"))
	if !isUUID(id) {
		return "", fmt.Errorf("id %q: %w", id, domain.ErrNotFound)
	}
	return id, nil
}

// queryID devuelve una copia del parámetro de consulta; vacío significa sin filtro.
func queryID(c *fiber.Ctx, name string) (string, error) {
	v := utils.CopyString(c.Query(name))
	if v != "" && !isUUID(v) {
		return "", domain.Invalid(name, "debe ser un UUID")
	}
	return v, nil
}
