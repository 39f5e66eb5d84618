package audit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/testutil"
)

func TestRecord_SerializaBeforeAfterMetadata(t *testing.T) {
	repo := testutil.NewMemAuditRepo()
	rec := audit.NewRecorder(repo)

	type estado struct {
		Quantity int64 `json:"quantity"`
	}
	out, err := rec.Record(context.Background(), audit.Entry{
		Action:   entity.ActionStockOut,
		Entity:   "Stock",
		EntityID: "stk-1",
		UserID:   "user-1",
		Before:   estado{Quantity: 10},
		After:    estado{Quantity: 7},
		Metadata: map[string]any{"reason": "venta"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.False(t, out.CreatedAt.IsZero())

	require.NotNil(t, out.Before)
	require.NotNil(t, out.After)
	require.NotNil(t, out.Metadata)

	var before, after estado
	require.NoError(t, json.Unmarshal([]byte(*out.Before), &before))
	require.NoError(t, json.Unmarshal([]byte(*out.After), &after))
	assert.Equal(t, int64(10), before.Quantity)
	assert.Equal(t, int64(7), after.Quantity)

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(*out.Metadata), &meta))
	assert.Equal(t, "venta", meta["reason"])
}

func TestRecord_CamposOpcionalesNulos(t *testing.T) {
	repo := testutil.NewMemAuditRepo()
	rec := audit.NewRecorder(repo)

	out, err := rec.Record(context.Background(), audit.Entry{
		Action:   entity.ActionStockInit,
		Entity:   "Stock",
		EntityID: "stk-1",
		UserID:   "user-1",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Before, "before ausente debe guardarse como NULL")
	assert.Nil(t, out.After)
	assert.Nil(t, out.Metadata)
}

func TestRecord_ValidaCamposObligatorios(t *testing.T) {
	repo := testutil.NewMemAuditRepo()
	rec := audit.NewRecorder(repo)
	ctx := context.Background()

	base := audit.Entry{
		Action: entity.ActionStockIn, Entity: "Stock", EntityID: "stk-1", UserID: "user-1",
	}
	for name, mutate := range map[string]func(*audit.Entry){
		"sin action":    func(e *audit.Entry) { e.Action = "" },
		"sin entity":    func(e *audit.Entry) { e.Entity = "" },
		"sin entity_id": func(e *audit.Entry) { e.EntityID = "" },
		"sin user_id":   func(e *audit.Entry) { e.UserID = "" },
	} {
		in := base
		mutate(&in)
		_, err := rec.Record(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Empty(t, repo.Records(), "las entradas inválidas no deben persistirse")
}

func TestQuery_FiltraPorEntidadYUsuario(t *testing.T) {
	repo := testutil.NewMemAuditRepo()
	rec := audit.NewRecorder(repo)
	query := audit.NewQuery(repo)
	ctx := context.Background()

	_, err := rec.Record(ctx, audit.Entry{Action: entity.ActionStockIn, Entity: "Stock", EntityID: "stk-1", UserID: "user-1"})
	require.NoError(t, err)
	_, err = rec.Record(ctx, audit.Entry{Action: entity.ActionStockOut, Entity: "Stock", EntityID: "stk-2", UserID: "user-2"})
	require.NoError(t, err)
	_, err = rec.Record(ctx, audit.Entry{Action: entity.ActionProductCreate, Entity: "Product", EntityID: "prod-1", UserID: "user-1"})
	require.NoError(t, err)

	byEntity, err := query.ListByEntity(ctx, "Stock", "stk-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, entity.ActionStockIn, byEntity[0].Action)

	byUser, err := query.ListByUser(ctx, "user-1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	all, err := query.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = query.ListByEntity(ctx, "Stock", "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
