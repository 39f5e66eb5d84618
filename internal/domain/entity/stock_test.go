package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// NewStock — validación de construcción
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStock_CantidadInicialValida(t *testing.T) {
	s, err := entity.NewStock("prod-1", 10)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", s.ProductID())
	assert.Equal(t, int64(10), s.Quantity())
	assert.Empty(t, s.ID(), "el ID se asigna al persistir, no al construir")
}

func TestNewStock_CantidadCeroEsValida(t *testing.T) {
	s, err := entity.NewStock("prod-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity())
}

func TestNewStock_CantidadNegativaRechazada(t *testing.T) {
	_, err := entity.NewStock("prod-1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewStock_ProductoVacioRechazado(t *testing.T) {
	_, err := entity.NewStock("", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Increase / Decrease — aritmética e invariante de no-negatividad
// ──────────────────────────────────────────────────────────────────────────────

func TestIncrease_SumaCantidad(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 3)
	require.NoError(t, s.Increase(4))
	assert.Equal(t, int64(7), s.Quantity())
}

func TestIncrease_RechazaCeroYNegativo(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 3)
	assert.ErrorIs(t, s.Increase(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Increase(-2), domain.ErrInvalidInput)
	assert.Equal(t, int64(3), s.Quantity(), "una entrada rechazada no debe mutar la cantidad")
}

func TestDecrease_RestaCantidad(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 10)
	require.NoError(t, s.Decrease(3))
	assert.Equal(t, int64(7), s.Quantity())
}

func TestDecrease_HastaCeroExacto(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 5)
	require.NoError(t, s.Decrease(5))
	assert.Equal(t, int64(0), s.Quantity())
}

func TestDecrease_InsuficienteNoMuta(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 7)
	err := s.Decrease(8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(7), s.Quantity(), "una salida rechazada no debe mutar la cantidad")
}

func TestDecrease_RechazaCeroYNegativo(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 7)
	assert.ErrorIs(t, s.Decrease(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Decrease(-1), domain.ErrInvalidInput)
	assert.Equal(t, int64(7), s.Quantity())
}

// ──────────────────────────────────────────────────────────────────────────────
// Clone / Snapshot / RestoreStock
// ──────────────────────────────────────────────────────────────────────────────

func TestClone_EsIndependiente(t *testing.T) {
	s, _ := entity.NewStock("prod-1", 10)
	c := s.Clone()
	require.NoError(t, s.Decrease(4))

	assert.Equal(t, int64(6), s.Quantity())
	assert.Equal(t, int64(10), c.Quantity(), "el clon no debe verse afectado por mutaciones del original")
}

func TestSnapshot_ReflejaEstadoActual(t *testing.T) {
	now := time.Now()
	s := entity.RestoreStock("stk-1", "prod-1", 42, 3, now)

	snap := s.Snapshot()
	assert.Equal(t, "stk-1", snap.ID)
	assert.Equal(t, "prod-1", snap.ProductID)
	assert.Equal(t, int64(42), snap.Quantity)
	assert.Equal(t, int64(3), snap.Version)
	assert.Equal(t, now, snap.UpdatedAt)
}

func TestRestoreStock_Rehidrata(t *testing.T) {
	s := entity.RestoreStock("stk-1", "prod-1", 5, 2, time.Now())
	assert.Equal(t, "stk-1", s.ID())
	assert.Equal(t, int64(5), s.Quantity())
	assert.Equal(t, int64(2), s.Version())
}
