package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
	"github.com/tu-usuario/backoffice-api/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). name_search guarda el nombre normalizado (sin
// acentos, en minúsculas) para búsqueda.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT id, name, description, price, code, barcode, category_id, active, created_by, created_at, updated_at
	FROM products`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_search, description, price, code, barcode, category_id, active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, normalize.SearchKey(product.Name), product.Description,
		product.Price, product.Code, product.Barcode, product.CategoryID,
		product.Active, product.CreatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, productSelect+` WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras, o nil si no existe.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, productSelect+` WHERE barcode = $1`, barcode)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, name_search = $3, description = $4, price = $5, category_id = NULLIF($6, ''), active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, normalize.SearchKey(product.Name), product.Description,
		product.Price, product.CategoryID, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con paginación; si search no es vacío filtra por nombre normalizado.
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		query := productSelect + `
			WHERE name_search LIKE '%' || $1 || '%'
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(ctx, query, normalize.SearchKey(search), limit, offset)
	} else {
		query := productSelect + `
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                   entity.Product
		barcode, categoryID *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Code, &barcode,
		&categoryID, &p.Active, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}
