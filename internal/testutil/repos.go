// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para tests de los servicios de aplicación. MemStockRepo
// reproduce la semántica de escritura condicional del repositorio real.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var (
	_ repository.StockRepository   = (*MemStockRepo)(nil)
	_ repository.AuditRepository   = (*MemAuditRepo)(nil)
	_ repository.ProductRepository = (*MemProductRepo)(nil)
	_ repository.TicketRepository  = (*MemTicketRepo)(nil)
)

// ── MemStockRepo ──────────────────────────────────────────────────────────────

// MemStockRepo repositorio de stock en memoria con CAS sobre (id, version).
type MemStockRepo struct {
	mu        sync.Mutex
	byProduct map[string]*entity.Stock
	seq       int

	FindErr error // si no es nil, FindByProductID falla con este error
	SaveErr error // si no es nil, Save falla con este error
}

// NewMemStockRepo construye el repositorio vacío.
func NewMemStockRepo() *MemStockRepo {
	return &MemStockRepo{byProduct: make(map[string]*entity.Stock)}
}

// FindByProductID devuelve una copia del stock del producto, o nil si no existe.
func (r *MemStockRepo) FindByProductID(_ context.Context, productID string) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FindErr != nil {
		return nil, r.FindErr
	}
	s, ok := r.byProduct[productID]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// Save inserta (ID vacío) o actualiza condicionado a la versión leída.
func (r *MemStockRepo) Save(_ context.Context, stock *entity.Stock) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return nil, r.SaveErr
	}
	if stock.ID() == "" {
		if _, exists := r.byProduct[stock.ProductID()]; exists {
			return nil, domain.ErrStockAlreadyInit
		}
		r.seq++
		stored := entity.RestoreStock(
			fmt.Sprintf("stk-%d", r.seq), stock.ProductID(), stock.Quantity(), 1, time.Now(),
		)
		r.byProduct[stock.ProductID()] = stored
		return stored.Clone(), nil
	}
	current, ok := r.byProduct[stock.ProductID()]
	if !ok || current.ID() != stock.ID() || current.Version() != stock.Version() {
		return nil, domain.ErrVersionConflict
	}
	stored := entity.RestoreStock(
		stock.ID(), stock.ProductID(), stock.Quantity(), stock.Version()+1, time.Now(),
	)
	r.byProduct[stock.ProductID()] = stored
	return stored.Clone(), nil
}

// ── MemAuditRepo ──────────────────────────────────────────────────────────────

// MemAuditRepo log de auditoría en memoria, append-only.
type MemAuditRepo struct {
	mu      sync.Mutex
	records []*entity.AuditRecord
	seq     int

	SaveErr error // si no es nil, Save falla con este error
}

// NewMemAuditRepo construye el log vacío.
func NewMemAuditRepo() *MemAuditRepo {
	return &MemAuditRepo{}
}

// Save agrega el registro asignándole un ID.
func (r *MemAuditRepo) Save(_ context.Context, record *entity.AuditRecord) (*entity.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return nil, r.SaveErr
	}
	r.seq++
	saved := *record
	saved.ID = fmt.Sprintf("aud-%d", r.seq)
	r.records = append(r.records, &saved)
	return &saved, nil
}

// ListByEntity filtra por entidad e ID.
func (r *MemAuditRepo) ListByEntity(_ context.Context, entityName, entityID string, limit, offset int) ([]*entity.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AuditRecord
	for _, rec := range r.records {
		if rec.Entity == entityName && rec.EntityID == entityID {
			out = append(out, rec)
		}
	}
	return page(out, limit, offset), nil
}

// ListByUser filtra por usuario autor.
func (r *MemAuditRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AuditRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return page(out, limit, offset), nil
}

// List devuelve todos los registros.
func (r *MemAuditRepo) List(_ context.Context, limit, offset int) ([]*entity.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.records, limit, offset), nil
}

// Records devuelve una copia del log para aserciones.
func (r *MemAuditRepo) Records() []*entity.AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.AuditRecord, len(r.records))
	copy(out, r.records)
	return out
}

// ByAction devuelve los registros de una acción concreta.
func (r *MemAuditRepo) ByAction(action string) []*entity.AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AuditRecord
	for _, rec := range r.records {
		if rec.Action == action {
			out = append(out, rec)
		}
	}
	return out
}

func page(records []*entity.AuditRecord, limit, offset int) []*entity.AuditRecord {
	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

// ── MemProductRepo ────────────────────────────────────────────────────────────

// MemProductRepo catálogo de productos en memoria.
type MemProductRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
}

// NewMemProductRepo construye el catálogo vacío.
func NewMemProductRepo() *MemProductRepo {
	return &MemProductRepo{byID: make(map[string]*entity.Product)}
}

// Create inserta el producto.
func (r *MemProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if p.Barcode != "" && existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	r.byID[p.ID] = p.Clone()
	return nil
}

// GetByID devuelve el producto, o nil si no existe.
func (r *MemProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// GetByBarcode devuelve el producto por código de barras, o nil si no existe.
func (r *MemProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Barcode == barcode {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

// Update reemplaza el producto.
func (r *MemProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p.Clone()
	return nil
}

// List devuelve todos los productos (ignora search en los tests).
func (r *MemProductRepo) List(_ context.Context, _ string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p.Clone())
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ── MemTicketRepo ─────────────────────────────────────────────────────────────

// MemTicketRepo tickets en memoria.
type MemTicketRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Ticket
}

// NewMemTicketRepo construye el repositorio vacío.
func NewMemTicketRepo() *MemTicketRepo {
	return &MemTicketRepo{byID: make(map[string]*entity.Ticket)}
}

// Create inserta el ticket.
func (r *MemTicketRepo) Create(_ context.Context, tk *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[tk.ID] = tk.Clone()
	return nil
}

// GetByID devuelve el ticket, o nil si no existe.
func (r *MemTicketRepo) GetByID(_ context.Context, id string) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tk, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return tk.Clone(), nil
}

// Update reemplaza el ticket.
func (r *MemTicketRepo) Update(_ context.Context, tk *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[tk.ID] = tk.Clone()
	return nil
}

// List devuelve todos los tickets.
func (r *MemTicketRepo) List(_ context.Context, limit, offset int) ([]*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Ticket, 0, len(r.byID))
	for _, tk := range r.byID {
		out = append(out, tk.Clone())
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Delete elimina el ticket.
func (r *MemTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}
