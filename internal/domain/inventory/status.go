package inventory

import (
	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

// CanTransition implementa la máquina de estados de los documentos:
//
//	draft -> waiting -> ready -> done
//	cualquier estado salvo done -> canceled
//
// done y canceled son terminales. Pedir el mismo estado actual no es una transición válida.
func CanTransition(from, to entity.OperationStatus) bool {
	if from.IsTerminal() || from == to {
		return false
	}
	switch to {
	case entity.StatusWaiting:
		return from == entity.StatusDraft
	case entity.StatusReady:
		return from == entity.StatusWaiting
	case entity.StatusDone:
		return from == entity.StatusReady
	case entity.StatusCanceled:
		return true
	}
	return false
}

// Transition cambia el estado del documento o devuelve domain.ErrInvalidTransition sin modificarlo.
// No aplica efectos de stock: el paso a done lo orquesta la capa de aplicación.
func Transition(doc *entity.OperationDocument, to entity.OperationStatus) error {
	if !to.IsValid() {
		return domain.Invalid("status", "estado desconocido: "+string(to))
	}
	if !CanTransition(doc.Status, to) {
		return domain.ErrInvalidTransition
	}
	doc.Status = to
	return nil
}
