package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/CellStock-api/internal/domain"
	"github.com/jhoicas/CellStock-api/internal/domain/entity"
	"github.com/jhoicas/CellStock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s session
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{s: session{db: db}}
}

func sameEmail(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

func (r *UserRepo) Create(_ context.Context, user *entity.User) (err error) {
	r.s.write(func() {
		if r.s.db.users.count(func(x *entity.User) bool { return sameEmail(x.Email, user.Email) }) > 0 {
			err = domain.ErrDuplicate
			return
		}
		insert(r.s, r.s.db.users, user.ID, user)
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (out *entity.User, _ error) {
	r.s.read(func() { out, _ = r.s.db.users.get(id) })
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (out *entity.User, _ error) {
	r.s.read(func() {
		if list := r.s.db.users.filter(func(x *entity.User) bool { return sameEmail(x.Email, email) }); len(list) > 0 {
			out = list[0]
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) (out []*entity.User, _ error) {
	r.s.read(func() { out = r.s.db.users.filter(func(*entity.User) bool { return true }) })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) (err error) {
	r.s.write(func() {
		dup := r.s.db.users.count(func(x *entity.User) bool { return sameEmail(x.Email, user.Email) && x.ID != user.ID })
		if dup > 0 {
			err = domain.ErrDuplicate
			return
		}
		if !replace(r.s, r.s.db.users, user.ID, user) {
			err = domain.ErrNotFound
		}
	})
	return err
}

func (r *UserRepo) Delete(_ context.Context, id string) (ok bool, _ error) {
	r.s.write(func() { ok = drop(r.s, r.s.db.users, id) })
	return ok, nil
}

func (r *UserRepo) ExistsWithRole(_ context.Context, role string) (ok bool, _ error) {
	r.s.read(func() { ok = r.s.db.users.count(func(x *entity.User) bool { return x.Role == role }) > 0 })
	return ok, nil
}
