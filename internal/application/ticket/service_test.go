package ticket_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/application/ticket"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/testutil"
	"github.com/tu-usuario/backoffice-api/pkg/logger"
)

const (
	testUserID  = "user-1"
	testBarcode = "7701234567890"
)

// fakeReceiptGen genera un PDF sintético para los tests.
type fakeReceiptGen struct {
	calls int
}

func (g *fakeReceiptGen) GenerateTicketReceipt(_ context.Context, _ *entity.Ticket, _ *entity.Product) ([]byte, error) {
	g.calls++
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	svc      *ticket.Service
	stockSvc *stock.Service
	products *testutil.MemProductRepo
	tickets  *testutil.MemTicketRepo
	audits   *testutil.MemAuditRepo
	receipts *fakeReceiptGen
	product  *entity.Product
}

// newFixture arma el servicio completo con un producto de stock inicial dado.
func newFixture(t *testing.T, initialStock int64) *fixture {
	t.Helper()
	ctx := context.Background()

	products := testutil.NewMemProductRepo()
	tickets := testutil.NewMemTicketRepo()
	stocks := testutil.NewMemStockRepo()
	audits := testutil.NewMemAuditRepo()
	receipts := &fakeReceiptGen{}

	auditor := audit.NewRecorder(audits)
	log := logger.New(logger.Config{Level: "error"})
	stockSvc := stock.NewService(stocks, auditor, log)
	svc := ticket.NewService(tickets, products, stockSvc, auditor, receipts)

	now := time.Now()
	p := &entity.Product{
		ID:        "prod-1",
		Name:      "Café molido 500g",
		Price:     decimal.NewFromInt(25000),
		Code:      "CAF-500",
		Barcode:   testBarcode,
		Active:    true,
		CreatedBy: testUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, products.Create(ctx, p))
	_, err := stockSvc.Initialize(ctx, stock.InitializeInput{
		ProductID: p.ID, Quantity: initialStock, UserID: testUserID,
	})
	require.NoError(t, err)

	return &fixture{
		svc: svc, stockSvc: stockSvc, products: products,
		tickets: tickets, audits: audits, receipts: receipts, product: p,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consume
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_DescuentaStockYCreaTicket(t *testing.T) {
	fx := newFixture(t, 5)
	ctx := context.Background()

	tk, err := fx.svc.Consume(ctx, testBarcode, testUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, fx.product.ID, tk.ProductID)
	assert.Equal(t, 0, tk.Printed, "el ticket nace sin impresiones")
	assert.Equal(t, testUserID, tk.CreatedBy)

	s, err := fx.stockSvc.Get(ctx, fx.product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), s.Quantity(), "el consumo descuenta exactamente una unidad")
}

// Un consumo deja DOS registros de auditoría independientes: STOCK_OUT sobre
// la entidad Stock y TICKET_CONSUME sobre la entidad Product.
func TestConsume_DejaDobleAuditoria(t *testing.T) {
	fx := newFixture(t, 5)

	tk, err := fx.svc.Consume(context.Background(), testBarcode, testUserID)
	require.NoError(t, err)

	stockOut := fx.audits.ByAction(entity.ActionStockOut)
	require.Len(t, stockOut, 1)
	assert.Equal(t, "Stock", stockOut[0].Entity)
	require.NotNil(t, stockOut[0].Metadata)
	var stockMeta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*stockOut[0].Metadata), &stockMeta))
	assert.Equal(t, ticket.ReasonConsume, stockMeta["reason"])

	consume := fx.audits.ByAction(entity.ActionTicketConsume)
	require.Len(t, consume, 1)
	assert.Equal(t, "Product", consume[0].Entity)
	assert.Equal(t, fx.product.ID, consume[0].EntityID)
	require.NotNil(t, consume[0].Metadata)
	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*consume[0].Metadata), &meta))
	assert.Equal(t, tk.ID, meta["ticket_id"])
	assert.Equal(t, testBarcode, meta["barcode"])
}

func TestConsume_CodigoDesconocido(t *testing.T) {
	fx := newFixture(t, 5)

	_, err := fx.svc.Consume(context.Background(), "0000000000000", testUserID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, fx.audits.ByAction(entity.ActionTicketConsume))
}

func TestConsume_SinStockNoCreaTicket(t *testing.T) {
	fx := newFixture(t, 0)
	ctx := context.Background()

	_, err := fx.svc.Consume(ctx, testBarcode, testUserID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := fx.svc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "un consumo rechazado no debe dejar ticket")
	assert.Empty(t, fx.audits.ByAction(entity.ActionTicketConsume))
}

func TestConsume_EntradaVaciaRechazada(t *testing.T) {
	fx := newFixture(t, 5)

	_, err := fx.svc.Consume(context.Background(), "", testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.svc.Consume(context.Background(), testBarcode, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Print / Receipt
// ──────────────────────────────────────────────────────────────────────────────

func TestPrint_IncrementaContadorYAudita(t *testing.T) {
	fx := newFixture(t, 5)
	ctx := context.Background()

	tk, err := fx.svc.Consume(ctx, testBarcode, testUserID)
	require.NoError(t, err)

	printed, err := fx.svc.Print(ctx, tk.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, printed.Printed)

	printed, err = fx.svc.Print(ctx, tk.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, printed.Printed)

	recs := fx.audits.ByAction(entity.ActionTicketPrint)
	assert.Len(t, recs, 2, "cada impresión deja su propio TICKET_PRINT")
}

func TestPrint_TicketInexistente(t *testing.T) {
	fx := newFixture(t, 5)
	_, err := fx.svc.Print(context.Background(), "no-existe", testUserID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestReceipt_GeneraPDFYCuentaComoImpresion(t *testing.T) {
	fx := newFixture(t, 5)
	ctx := context.Background()

	tk, err := fx.svc.Consume(ctx, testBarcode, testUserID)
	require.NoError(t, err)

	pdf, err := fx.svc.Receipt(ctx, tk.ID, testUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, fx.receipts.calls)

	after, err := fx.svc.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Printed, "generar la tirilla cuenta como impresión")
	assert.Len(t, fx.audits.ByAction(entity.ActionTicketPrint), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EliminaTicket(t *testing.T) {
	fx := newFixture(t, 5)
	ctx := context.Background()

	tk, err := fx.svc.Consume(ctx, testBarcode, testUserID)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, tk.ID))
	_, err = fx.svc.GetByID(ctx, tk.ID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestDelete_TicketInexistente(t *testing.T) {
	fx := newFixture(t, 5)
	err := fx.svc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}
