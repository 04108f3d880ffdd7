package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var (
	_ repository.ModelRepository = (*ModelRepo)(nil)
	_ repository.UnitRepository  = (*UnitRepo)(nil)
)

// ModelRepo implementación en memoria de ModelRepository.
type ModelRepo struct {
	s session
}

// NewModelRepository construye el repositorio.
func NewModelRepository(db *DB) *ModelRepo {
	return &ModelRepo{s: session{db: db}}
}

func sameName(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

func (r *ModelRepo) Create(_ context.Context, m *entity.ProductModel) error {
	r.s.write(func() { insert(r.s, r.s.db.models, m.ID, m) })
	return nil
}

func (r *ModelRepo) GetByID(_ context.Context, storeID, id string) (out *entity.ProductModel, _ error) {
	r.s.read(func() {
		if m, ok := r.s.db.models.get(id); ok && m.StoreID == storeID {
			out = m
		}
	})
	return out, nil
}

func (r *ModelRepo) FindByName(_ context.Context, storeID, name string) (out *entity.ProductModel, _ error) {
	r.s.read(func() {
		list := r.s.db.models.filter(func(m *entity.ProductModel) bool {
			return m.StoreID == storeID && sameName(m.Name, name)
		})
		if len(list) > 0 {
			out = list[0]
		}
	})
	return out, nil
}

func (r *ModelRepo) ListByStore(_ context.Context, storeID string) (out []*entity.ProductModel, _ error) {
	r.s.read(func() {
		out = r.s.db.models.filter(func(m *entity.ProductModel) bool { return m.StoreID == storeID })
	})
	return out, nil
}

func (r *ModelRepo) Update(_ context.Context, m *entity.ProductModel) (err error) {
	r.s.write(func() {
		cur, ok := r.s.db.models.raw(m.ID)
		if !ok || cur.StoreID != m.StoreID {
			err = domain.ErrNotFound
			return
		}
		replace(r.s, r.s.db.models, m.ID, m)
	})
	return err
}

func (r *ModelRepo) Delete(_ context.Context, storeID, id string) (ok bool, _ error) {
	r.s.write(func() {
		if cur, found := r.s.db.models.raw(id); found && cur.StoreID == storeID {
			ok = drop(r.s, r.s.db.models, id)
		}
	})
	return ok, nil
}

func (r *ModelRepo) Count(_ context.Context, storeID string) (n int, _ error) {
	r.s.read(func() {
		n = r.s.db.models.count(func(m *entity.ProductModel) bool { return m.StoreID == storeID })
	})
	return n, nil
}

// UnitRepo implementación en memoria de UnitRepository.
type UnitRepo struct {
	s session
}

// NewUnitRepository construye el repositorio.
func NewUnitRepository(db *DB) *UnitRepo {
	return &UnitRepo{s: session{db: db}}
}

func (r *UnitRepo) imeiTaken(u *entity.ProductUnit) bool {
	if u.IMEI == "" {
		return false
	}
	return r.s.db.units.count(func(x *entity.ProductUnit) bool {
		return x.StoreID == u.StoreID && x.IMEI == u.IMEI && x.ID != u.ID
	}) > 0
}

func (r *UnitRepo) Create(_ context.Context, u *entity.ProductUnit) (err error) {
	r.s.write(func() {
		if r.imeiTaken(u) {
			err = domain.ErrDuplicate
			return
		}
		insert(r.s, r.s.db.units, u.ID, u)
	})
	return err
}

func (r *UnitRepo) GetByID(_ context.Context, storeID, id string) (out *entity.ProductUnit, _ error) {
	r.s.read(func() {
		if u, ok := r.s.db.units.get(id); ok && u.StoreID == storeID {
			out = u
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: dentro de RunSale el lock de escritura ya está tomado.
func (r *UnitRepo) GetForUpdate(ctx context.Context, storeID, id string) (*entity.ProductUnit, error) {
	return r.GetByID(ctx, storeID, id)
}

func (r *UnitRepo) GetByIMEI(_ context.Context, storeID, imei string) (out *entity.ProductUnit, _ error) {
	r.s.read(func() {
		list := r.s.db.units.filter(func(u *entity.ProductUnit) bool { return u.StoreID == storeID && u.IMEI == imei })
		if len(list) > 0 {
			out = list[0]
		}
	})
	return out, nil
}

func (r *UnitRepo) List(_ context.Context, storeID string, f repository.UnitFilter) (out []*entity.ProductUnit, _ error) {
	r.s.read(func() {
		out = r.s.db.units.filter(func(u *entity.ProductUnit) bool {
			if u.StoreID != storeID {
				return false
			}
			if f.ModelID != "" && u.ModelID != f.ModelID {
				return false
			}
			return f.Sold == nil || u.Sold == *f.Sold
		})
	})
	return out, nil
}

func (r *UnitRepo) Update(_ context.Context, u *entity.ProductUnit) (err error) {
	r.s.write(func() {
		cur, ok := r.s.db.units.raw(u.ID)
		if !ok || cur.StoreID != u.StoreID {
			err = domain.ErrNotFound
			return
		}
		if r.imeiTaken(u) {
			err = domain.ErrDuplicate
			return
		}
		// sold solo cambia por MarkSold/MarkUnsold.
		next := *u
		next.Sold = cur.Sold
		replace(r.s, r.s.db.units, u.ID, &next)
	})
	return err
}

func (r *UnitRepo) Delete(_ context.Context, storeID, id string) (ok bool, _ error) {
	r.s.write(func() {
		if cur, found := r.s.db.units.raw(id); found && cur.StoreID == storeID {
			ok = drop(r.s, r.s.db.units, id)
		}
	})
	return ok, nil
}

func (r *UnitRepo) setSold(storeID, id string, want bool, onlyIfChanges bool) (ok bool) {
	r.s.write(func() {
		cur, found := r.s.db.units.raw(id)
		if !found || cur.StoreID != storeID {
			return
		}
		if onlyIfChanges && cur.Sold == want {
			return
		}
		next := *cur
		next.Sold = want
		ok = replace(r.s, r.s.db.units, id, &next)
	})
	return ok
}

func (r *UnitRepo) MarkSold(_ context.Context, storeID, id string) (bool, error) {
	return r.setSold(storeID, id, true, true), nil
}

func (r *UnitRepo) MarkUnsold(_ context.Context, storeID, id string) (bool, error) {
	return r.setSold(storeID, id, false, false), nil
}

func (r *UnitRepo) CountAvailable(_ context.Context, storeID, modelID string) (n int, _ error) {
	r.s.read(func() {
		n = r.s.db.units.count(func(u *entity.ProductUnit) bool {
			return u.StoreID == storeID && !u.Sold && (modelID == "" || u.ModelID == modelID)
		})
	})
	return n, nil
}

func (r *UnitRepo) CountByModel(_ context.Context, storeID, modelID string) (n int, _ error) {
	r.s.read(func() {
		n = r.s.db.units.count(func(u *entity.ProductUnit) bool { return u.StoreID == storeID && u.ModelID == modelID })
	})
	return n, nil
}
