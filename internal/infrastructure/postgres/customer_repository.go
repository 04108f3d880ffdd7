package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, store_id, name, document, contact, email, phone, address, created_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row scanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.StoreID, &c.Name, &c.Document, &c.Contact, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, store_id, name, document, contact, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.StoreID, c.Name, c.Document, c.Contact, c.Email, c.Phone, c.Address, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) get(ctx context.Context, where string, args ...any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE `+where, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente de la tienda por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Customer, error) {
	return r.get(ctx, `store_id = $1 AND id = $2`, storeID, id)
}

// GetByDocument busca por CPF normalizado (solo dígitos).
func (r *CustomerRepo) GetByDocument(ctx context.Context, storeID, document string) (*entity.Customer, error) {
	return r.get(ctx, `store_id = $1 AND document = $2 ORDER BY seq LIMIT 1`, storeID, document)
}

// FindByName busca por nombre exacto sin distinguir mayúsculas ni espacios en los extremos.
func (r *CustomerRepo) FindByName(ctx context.Context, storeID, name string) (*entity.Customer, error) {
	return r.get(ctx, sameNameWhere+` ORDER BY seq LIMIT 1`, storeID, name)
}

// ListByStore lista los clientes de la tienda en orden de alta.
func (r *CustomerRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers WHERE store_id = $1 ORDER BY seq`, storeID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return collect(rows, scanCustomer)
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $3, document = $4, contact = $5, email = $6, phone = $7, address = $8
		WHERE store_id = $1 AND id = $2`,
		c.StoreID, c.ID, c.Name, c.Document, c.Contact, c.Email, c.Phone, c.Address,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente; false si no existía en la tienda.
func (r *CustomerRepo) Delete(ctx context.Context, storeID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count cantidad de clientes de la tienda.
func (r *CustomerRepo) Count(ctx context.Context, storeID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE store_id = $1`, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}
