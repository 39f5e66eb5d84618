package stock_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/testutil"
	"github.com/tu-usuario/backoffice-api/pkg/logger"
)

const (
	testProductID = "prod-1"
	testUserID    = "user-1"
)

// newService arma el servicio con repos en memoria y devuelve ambos para aserciones.
func newService() (*stock.Service, *testutil.MemStockRepo, *testutil.MemAuditRepo) {
	stocks := testutil.NewMemStockRepo()
	audits := testutil.NewMemAuditRepo()
	log := logger.New(logger.Config{Level: "error"})
	svc := stock.NewService(stocks, audit.NewRecorder(audits), log)
	return svc, stocks, audits
}

// ──────────────────────────────────────────────────────────────────────────────
// Initialize
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_CreaStockYAudita(t *testing.T) {
	svc, _, audits := newService()

	s, err := svc.Initialize(context.Background(), stock.InitializeInput{
		ProductID: testProductID, Quantity: 10, UserID: testUserID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Quantity())
	assert.NotEmpty(t, s.ID(), "el stock persistido debe tener ID")

	recs := audits.ByAction(entity.ActionStockInit)
	require.Len(t, recs, 1, "Initialize debe dejar exactamente un STOCK_INIT")
	assert.Equal(t, "Stock", recs[0].Entity)
	assert.Equal(t, testUserID, recs[0].UserID)
	assert.Nil(t, recs[0].Before, "STOCK_INIT no tiene estado previo")
	require.NotNil(t, recs[0].After)
}

func TestInitialize_SegundaVezRechazada(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 10, UserID: testUserID})
	require.NoError(t, err)

	_, err = svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 99, UserID: testUserID})
	assert.ErrorIs(t, err, domain.ErrStockAlreadyInit)

	// La cantidad original no debe cambiar y no debe haber segundo STOCK_INIT.
	s, err := svc.Get(ctx, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Quantity())
	assert.Len(t, audits.ByAction(entity.ActionStockInit), 1)
}

func TestInitialize_CantidadNegativaRechazadaSinEstado(t *testing.T) {
	svc, _, audits := newService()

	_, err := svc.Initialize(context.Background(), stock.InitializeInput{
		ProductID: testProductID, Quantity: -5, UserID: testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(context.Background(), testProductID)
	assert.ErrorIs(t, err, domain.ErrStockNotFound, "una inicialización inválida no debe dejar registro")
	assert.Empty(t, audits.Records(), "una inicialización inválida no debe dejar auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Increase / Decrease — flujo feliz y escenario de referencia
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: inicializar con 10, sacar 3, intentar sacar 8.
// La tercera operación falla y la cantidad queda en 7.
func TestMovimientos_EscenarioReferencia(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 10, UserID: testUserID})
	require.NoError(t, err)

	s, err := svc.Decrease(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 3, Reason: "venta", UserID: testUserID})
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Quantity())

	_, err = svc.Decrease(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 8, Reason: "venta", UserID: testUserID})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	s, err = svc.Get(ctx, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.Quantity(), "la salida rechazada no debe mutar la cantidad")

	// Un STOCK_OUT por la salida exitosa; la rechazada no audita.
	assert.Len(t, audits.ByAction(entity.ActionStockOut), 1)
}

func TestIncrease_SumaYAuditaConSnapshots(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 5, UserID: testUserID})
	require.NoError(t, err)

	s, err := svc.Increase(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 3, Reason: "compra", UserID: testUserID})
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.Quantity())

	recs := audits.ByAction(entity.ActionStockIn)
	require.Len(t, recs, 1)
	rec := recs[0]

	var before, after entity.StockSnapshot
	require.NotNil(t, rec.Before)
	require.NotNil(t, rec.After)
	require.NoError(t, json.Unmarshal([]byte(*rec.Before), &before))
	require.NoError(t, json.Unmarshal([]byte(*rec.After), &after))
	assert.Equal(t, int64(5), before.Quantity, "before debe ser el estado previo a la mutación")
	assert.Equal(t, int64(8), after.Quantity, "after debe ser el estado persistido")

	require.NotNil(t, rec.Metadata)
	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*rec.Metadata), &meta))
	assert.Equal(t, "compra", meta["reason"])
}

func TestDecrease_StockNoInicializado(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Decrease(context.Background(), stock.MovementInput{
		ProductID: "desconocido", Quantity: 1, UserID: testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestMovimiento_SinUsuarioRechazado(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 5, UserID: testUserID})
	require.NoError(t, err)

	_, err = svc.Increase(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := svc.Get(ctx, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.Quantity(), "una entrada inválida no debe tocar el estado")
	assert.Empty(t, audits.ByAction(entity.ActionStockIn))
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden persistencia → auditoría
// ──────────────────────────────────────────────────────────────────────────────

// Si la auditoría falla después de una persistencia exitosa, el error se
// propaga pero la mutación NO se revierte.
func TestDecrease_FalloDeAuditoriaNoRevierte(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 10, UserID: testUserID})
	require.NoError(t, err)

	auditErr := errors.New("audit log caído")
	audits.SaveErr = auditErr

	_, err = svc.Decrease(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 4, UserID: testUserID})
	assert.ErrorIs(t, err, auditErr, "el fallo de auditoría debe propagarse al caller")

	audits.SaveErr = nil
	s, err := svc.Get(ctx, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.Quantity(), "la mutación ya persistida no se revierte")
}

// Si la persistencia falla, no se escribe auditoría.
func TestDecrease_FalloDePersistenciaSinAuditoria(t *testing.T) {
	svc, stocks, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 10, UserID: testUserID})
	require.NoError(t, err)

	saveErr := errors.New("base de datos caída")
	stocks.SaveErr = saveErr

	_, err = svc.Decrease(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 4, UserID: testUserID})
	assert.ErrorIs(t, err, saveErr)
	assert.Empty(t, audits.ByAction(entity.ActionStockOut), "sin persistencia no hay auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia — la propiedad crítica del negocio
// ──────────────────────────────────────────────────────────────────────────────

// N salidas concurrentes de 1 unidad sobre un stock de k < N deben producir
// exactamente k éxitos y N-k rechazos por stock insuficiente, con cantidad
// final 0 y nunca negativa.
func TestDecrease_ConcurrenciaNoSobrevende(t *testing.T) {
	const (
		n = 20
		k = 7
	)
	svc, _, audits := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: k, UserID: testUserID})
	require.NoError(t, err)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successes    int
		insufficient int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Decrease(ctx, stock.MovementInput{
				ProductID: testProductID, Quantity: 1, Reason: "venta", UserID: testUserID,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, k, successes, "deben triunfar exactamente k salidas")
	assert.Equal(t, n-k, insufficient, "el resto debe rechazarse por stock insuficiente")

	s, err := svc.Get(ctx, testProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity(), "la cantidad final debe ser exactamente cero")

	assert.Len(t, audits.ByAction(entity.ActionStockOut), k,
		"cada salida exitosa deja exactamente un STOCK_OUT")
}

// Entradas y salidas concurrentes mezcladas: la cantidad final debe ser la
// suma aritmética de las operaciones exitosas.
func TestMovimientos_ConcurrenciaMixtaConsistente(t *testing.T) {
	const workers = 10
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Initialize(ctx, stock.InitializeInput{ProductID: testProductID, Quantity: 100, UserID: testUserID})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Increase(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 5, UserID: testUserID})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Decrease(ctx, stock.MovementInput{ProductID: testProductID, Quantity: 3, UserID: testUserID})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := svc.Get(ctx, testProductID)
	require.NoError(t, err)
	// 100 + 10*5 - 10*3 = 120
	assert.Equal(t, int64(120), s.Quantity())
}
