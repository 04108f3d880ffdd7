package memory

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s session
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db *DB) *CustomerRepo {
	return &CustomerRepo{s: session{db: db}}
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.write(func() { insert(r.s, r.s.db.customers, c.ID, c) })
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, storeID, id string) (out *entity.Customer, _ error) {
	r.s.read(func() {
		if c, ok := r.s.db.customers.get(id); ok && c.StoreID == storeID {
			out = c
		}
	})
	return out, nil
}

func (r *CustomerRepo) first(fn func(*entity.Customer) bool) (out *entity.Customer) {
	r.s.read(func() {
		if list := r.s.db.customers.filter(fn); len(list) > 0 {
			out = list[0]
		}
	})
	return out
}

func (r *CustomerRepo) GetByDocument(_ context.Context, storeID, document string) (*entity.Customer, error) {
	return r.first(func(c *entity.Customer) bool { return c.StoreID == storeID && c.Document == document }), nil
}

func (r *CustomerRepo) FindByName(_ context.Context, storeID, name string) (*entity.Customer, error) {
	return r.first(func(c *entity.Customer) bool { return c.StoreID == storeID && sameName(c.Name, name) }), nil
}

func (r *CustomerRepo) ListByStore(_ context.Context, storeID string) (out []*entity.Customer, _ error) {
	r.s.read(func() {
		out = r.s.db.customers.filter(func(c *entity.Customer) bool { return c.StoreID == storeID })
	})
	return out, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) (err error) {
	r.s.write(func() {
		cur, ok := r.s.db.customers.raw(c.ID)
		if !ok || cur.StoreID != c.StoreID {
			err = domain.ErrNotFound
			return
		}
		replace(r.s, r.s.db.customers, c.ID, c)
	})
	return err
}

func (r *CustomerRepo) Delete(_ context.Context, storeID, id string) (ok bool, _ error) {
	r.s.write(func() {
		if cur, found := r.s.db.customers.raw(id); found && cur.StoreID == storeID {
			ok = drop(r.s, r.s.db.customers, id)
		}
	})
	return ok, nil
}

func (r *CustomerRepo) Count(_ context.Context, storeID string) (n int, _ error) {
	r.s.read(func() {
		n = r.s.db.customers.count(func(c *entity.Customer) bool { return c.StoreID == storeID })
	})
	return n, nil
}
