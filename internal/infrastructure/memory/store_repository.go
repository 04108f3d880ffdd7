package memory

import (
	"context"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación en memoria de StoreRepository.
type StoreRepo struct {
	s session
}

// NewStoreRepository construye el repositorio.
func NewStoreRepository(db *DB) *StoreRepo {
	return &StoreRepo{s: session{db: db}}
}

func (r *StoreRepo) Create(_ context.Context, store *entity.Store) (err error) {
	r.s.write(func() {
		if r.s.db.stores.count(func(x *entity.Store) bool { return x.Slug == store.Slug }) > 0 {
			err = domain.ErrDuplicate
			return
		}
		insert(r.s, r.s.db.stores, store.ID, store)
	})
	return err
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (out *entity.Store, _ error) {
	r.s.read(func() { out, _ = r.s.db.stores.get(id) })
	return out, nil
}

func (r *StoreRepo) GetBySlug(_ context.Context, slug string) (out *entity.Store, _ error) {
	r.s.read(func() {
		if list := r.s.db.stores.filter(func(x *entity.Store) bool { return x.Slug == slug }); len(list) > 0 {
			out = list[0]
		}
	})
	return out, nil
}

func (r *StoreRepo) List(_ context.Context) (out []*entity.Store, _ error) {
	r.s.read(func() { out = r.s.db.stores.filter(func(*entity.Store) bool { return true }) })
	return out, nil
}

func (r *StoreRepo) Update(_ context.Context, store *entity.Store) (err error) {
	r.s.write(func() {
		dup := r.s.db.stores.count(func(x *entity.Store) bool { return x.Slug == store.Slug && x.ID != store.ID })
		if dup > 0 {
			err = domain.ErrDuplicate
			return
		}
		if !replace(r.s, r.s.db.stores, store.ID, store) {
			err = domain.ErrNotFound
		}
	})
	return err
}
