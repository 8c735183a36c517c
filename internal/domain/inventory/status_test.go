package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-engine/internal/domain"
	"github.com/jhoicas/stock-engine/internal/domain/entity"
)

var allStatuses = []entity.OperationStatus{
	entity.StatusDraft, entity.StatusWaiting, entity.StatusReady, entity.StatusDone, entity.StatusCanceled,
}

func TestCanTransition_Tabla(t *testing.T) {
	allowed := map[[2]entity.OperationStatus]bool{
		{entity.StatusDraft, entity.StatusWaiting}:    true,
		{entity.StatusWaiting, entity.StatusReady}:    true,
		{entity.StatusReady, entity.StatusDone}:       true,
		{entity.StatusDraft, entity.StatusCanceled}:   true,
		{entity.StatusWaiting, entity.StatusCanceled}: true,
		{entity.StatusReady, entity.StatusCanceled}:   true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]entity.OperationStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition_WaitingToReadyDesdeDraftFalla(t *testing.T) {
	doc := &entity.OperationDocument{Status: entity.StatusDraft}
	err := Transition(doc, entity.StatusReady)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusDraft, doc.Status)
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	doc := &entity.OperationDocument{Status: entity.StatusDraft}
	err := Transition(doc, entity.OperationStatus("archived"))
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, entity.StatusDraft, doc.Status)
}

// Ninguna secuencia de transiciones vuelve a draft o waiting desde un estado terminal.
func TestTransition_Monotonicidad(t *testing.T) {
	for _, terminal := range []entity.OperationStatus{entity.StatusDone, entity.StatusCanceled} {
		doc := &entity.OperationDocument{Status: terminal}
		for _, to := range allStatuses {
			require.ErrorIs(t, Transition(doc, to), domain.ErrInvalidTransition)
		}
		assert.Equal(t, terminal, doc.Status)
	}
}
