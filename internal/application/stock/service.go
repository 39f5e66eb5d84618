package stock

import (
	"context"
	"errors"

	"github.com/tu-usuario/backoffice-api/internal/application/audit"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
	"github.com/tu-usuario/backoffice-api/pkg/logger"
)

// Service orquesta las mutaciones del libro de stock: inicializar, entrada y
// salida. Cada operación es leer-mutar-escribir sobre el registro durable más
// un registro de auditoría después de la escritura.
//
// Contrato de orden: la persistencia del nuevo estado debe completarse antes de
// escribir la auditoría. Si la persistencia falla no se escribe auditoría. Si
// la persistencia fue exitosa y la auditoría falla, el error se propaga sin
// revertir ni reintentar la mutación (reintentarla la duplicaría); la
// inconsistencia se reconcilia fuera de línea desde el propio log.
//
// Concurrencia: Save es una escritura condicional sobre (id, version). Un
// ErrVersionConflict significa que otro escritor progresó; se recarga y se
// repite la secuencia completa. El invariante "nunca negativo" lo aplica la
// entidad sobre el estado recién leído, así dos salidas concurrentes no pueden
// sobrevender.
type Service struct {
	stocks  repository.StockRepository
	auditor *audit.Recorder
	log     *logger.Logger
}

// NewService construye el servicio con sus dependencias explícitas.
func NewService(stocks repository.StockRepository, auditor *audit.Recorder, log *logger.Logger) *Service {
	return &Service{stocks: stocks, auditor: auditor, log: log}
}

// InitializeInput parámetros para Initialize.
type InitializeInput struct {
	ProductID string
	Quantity  int64
	UserID    string
}

// MovementInput parámetros para Increase y Decrease.
type MovementInput struct {
	ProductID string
	Quantity  int64
	Reason    string
	UserID    string
}

// Initialize crea el Stock de un producto exactamente una vez.
// Devuelve domain.ErrStockAlreadyInit si ya existe un registro para el producto.
func (s *Service) Initialize(ctx context.Context, in InitializeInput) (*entity.Stock, error) {
	if in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.stocks.FindByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrStockAlreadyInit
	}
	stock, err := entity.NewStock(in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}
	// La unicidad por producto también la defiende la constraint del
	// repositorio: dos Initialize concurrentes no pueden insertar ambos.
	saved, err := s.stocks.Save(ctx, stock)
	if err != nil {
		return nil, err
	}
	if _, err := s.auditor.Record(ctx, audit.Entry{
		Action:   entity.ActionStockInit,
		Entity:   "Stock",
		EntityID: saved.ID(),
		UserID:   in.UserID,
		After:    saved.Snapshot(),
	}); err != nil {
		return nil, err
	}
	return saved, nil
}

// Increase suma in.Quantity al stock del producto y registra STOCK_IN.
func (s *Service) Increase(ctx context.Context, in MovementInput) (*entity.Stock, error) {
	return s.mutate(ctx, in, entity.ActionStockIn, (*entity.Stock).Increase)
}

// Decrease resta in.Quantity del stock del producto y registra STOCK_OUT.
// Es la regla crítica del negocio: nunca vender por debajo de cero. La
// combinación entidad (chequeo sobre estado recién leído) + escritura
// condicional garantiza que N salidas concurrentes de 1 unidad sobre un stock
// de k < N produzcan exactamente k éxitos y N-k rechazos.
func (s *Service) Decrease(ctx context.Context, in MovementInput) (*entity.Stock, error) {
	return s.mutate(ctx, in, entity.ActionStockOut, (*entity.Stock).Decrease)
}

// mutate ejecuta la secuencia cargar-clonar-mutar-guardar-auditar, repitiendo
// desde la carga ante un conflicto de versión.
func (s *Service) mutate(
	ctx context.Context,
	in MovementInput,
	action string,
	apply func(*entity.Stock, int64) error,
) (*entity.Stock, error) {
	if in.UserID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	for {
		stock, err := s.stocks.FindByProductID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if stock == nil {
			return nil, domain.ErrStockNotFound
		}
		before := stock.Clone()

		if err := apply(stock, in.Quantity); err != nil {
			// Entrada inválida o stock insuficiente: estado intacto, sin auditoría.
			return nil, err
		}

		saved, err := s.stocks.Save(ctx, stock)
		if errors.Is(err, domain.ErrVersionConflict) {
			// Otro escritor progresó; releer y repetir la secuencia completa.
			s.log.Debug().
				Str("product_id", in.ProductID).
				Str("action", action).
				Msg("conflicto de versión en stock, reintentando")
			continue
		}
		if err != nil {
			return nil, err
		}

		if _, err := s.auditor.Record(ctx, audit.Entry{
			Action:   action,
			Entity:   "Stock",
			EntityID: saved.ID(),
			UserID:   in.UserID,
			Before:   before.Snapshot(),
			After:    saved.Snapshot(),
			Metadata: map[string]any{"reason": in.Reason},
		}); err != nil {
			return nil, err
		}
		return saved, nil
	}
}

// Get devuelve el stock actual del producto (solo lectura).
func (s *Service) Get(ctx context.Context, productID string) (*entity.Stock, error) {
	stock, err := s.stocks.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockNotFound
	}
	return stock, nil
}
