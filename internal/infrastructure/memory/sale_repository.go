package memory

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s session
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(db *DB) *SaleRepo {
	return &SaleRepo{s: session{db: db}}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.write(func() { insert(r.s, r.s.db.sales, sale.ID, sale) })
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, storeID, id string) (out *entity.Sale, _ error) {
	r.s.read(func() {
		if s, ok := r.s.db.sales.get(id); ok && s.StoreID == storeID {
			out = s
		}
	})
	return out, nil
}

func (r *SaleRepo) ListByStore(_ context.Context, storeID string) (out []*entity.Sale, _ error) {
	r.s.read(func() {
		out = r.s.db.sales.filter(func(s *entity.Sale) bool { return s.StoreID == storeID })
	})
	return out, nil
}

func (r *SaleRepo) UpdateDetails(_ context.Context, storeID, id, paymentMethod, note string) (ok bool, _ error) {
	r.s.write(func() {
		cur, found := r.s.db.sales.raw(id)
		if !found || cur.StoreID != storeID {
			return
		}
		next := cloneSale(cur)
		next.PaymentMethod = paymentMethod
		next.Note = note
		ok = replace(r.s, r.s.db.sales, id, next)
	})
	return ok, nil
}

func (r *SaleRepo) Delete(_ context.Context, storeID, id string) (ok bool, _ error) {
	r.s.write(func() {
		if cur, found := r.s.db.sales.raw(id); found && cur.StoreID == storeID {
			ok = drop(r.s, r.s.db.sales, id)
		}
	})
	return ok, nil
}

func (r *SaleRepo) Count(_ context.Context, storeID string) (n int, _ error) {
	r.s.read(func() {
		n = r.s.db.sales.count(func(s *entity.Sale) bool { return s.StoreID == storeID })
	})
	return n, nil
}
