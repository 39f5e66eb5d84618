package product_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/application/dto"
	"github.com/tu-usuario/backoffice-api/internal/application/product"
	"github.com/tu-usuario/backoffice-api/internal/application/stock"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/testutil"
	"github.com/tu-usuario/backoffice-api/pkg/logger"
)

const testUserID = "user-1"

func newService() (*product.Service, *stock.Service, *testutil.MemAuditRepo) {
	products := testutil.NewMemProductRepo()
	stocks := testutil.NewMemStockRepo()
	audits := testutil.NewMemAuditRepo()
	auditor := audit.NewRecorder(audits)
	log := logger.New(logger.Config{Level: "error"})
	stockSvc := stock.NewService(stocks, auditor, log)
	return product.NewService(products, stockSvc, auditor), stockSvc, audits
}

func TestCreate_InicializaStockYAudita(t *testing.T) {
	svc, stockSvc, audits := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.CreateProductRequest{
		Name:            "Café molido 500g",
		Price:           decimal.NewFromInt(25000),
		Code:            "CAF-500",
		Barcode:         "7701234567890",
		InitialQuantity: 12,
	}, testUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Active, "los productos nacen activos")

	s, err := stockSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), s.Quantity(), "la cantidad inicial alimenta el stock")

	assert.Len(t, audits.ByAction(entity.ActionStockInit), 1)
	creates := audits.ByAction(entity.ActionProductCreate)
	require.Len(t, creates, 1)
	assert.Equal(t, "Product", creates[0].Entity)
	assert.Equal(t, p.ID, creates[0].EntityID)
}

func TestCreate_SinCantidadInicialQuedaEnCero(t *testing.T) {
	svc, stockSvc, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.CreateProductRequest{Name: "Azúcar"}, testUserID)
	require.NoError(t, err)

	s, err := stockSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity())
}

func TestCreate_CodigoDeBarrasDuplicado(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateProductRequest{Name: "A", Barcode: "111"}, testUserID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateProductRequest{Name: "B", Barcode: "111"}, testUserID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_SinNombreRechazado(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ParcheaCamposYAuditaBeforeAfter(t *testing.T) {
	svc, _, audits := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, dto.CreateProductRequest{
		Name: "Café", Price: decimal.NewFromInt(20000),
	}, testUserID)
	require.NoError(t, err)

	newName := "Café premium"
	newPrice := decimal.NewFromInt(28000)
	updated, err := svc.Update(ctx, p.ID, dto.UpdateProductRequest{
		Name:  &newName,
		Price: &newPrice,
	}, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Café premium", updated.Name)
	assert.True(t, newPrice.Equal(updated.Price))
	assert.True(t, updated.Active, "los campos no enviados no cambian")

	recs := audits.ByAction(entity.ActionProductUpdate)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].Before)
	require.NotNil(t, recs[0].After)
	assert.Contains(t, *recs[0].Before, "Café")
	assert.Contains(t, *recs[0].After, "Café premium")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	svc, _, _ := newService()
	name := "X"
	_, err := svc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name}, testUserID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetByBarcode_NoEncontrado(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.GetByBarcode(context.Background(), "000")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
