package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository sobre PostgreSQL (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create persiste un nuevo ticket.
func (r *TicketRepo) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, product_id, printed, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.ProductID, ticket.Printed, ticket.CreatedBy,
		ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID, o nil si no existe.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `
		SELECT id, product_id, printed, created_by, created_at, updated_at
		FROM tickets WHERE id = $1`
	var t entity.Ticket
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ProductID, &t.Printed, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// Update actualiza un ticket existente (contador de impresiones).
func (r *TicketRepo) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets SET printed = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, ticket.ID, ticket.Printed, ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// List lista tickets con paginación, más recientes primero.
func (r *TicketRepo) List(ctx context.Context, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, product_id, printed, created_by, created_at, updated_at
		FROM tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Printed, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina un ticket por ID.
func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}
