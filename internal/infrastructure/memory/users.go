package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ a access }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.write(func(st *state) error {
		if err := st.checkUserUnique(user, 0); err != nil {
			return err
		}
		user.ID = st.nextID("users")
		st.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.a.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.a.read(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.a.read(func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	r.a.read(func(st *state) {
		for _, u := range st.users {
			u := u
			list = append(list, &u)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.users[user.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := st.checkUserUnique(user, user.ID); err != nil {
			return err
		}
		st.users[user.ID] = *user
		return nil
	})
}

func (st *state) checkUserUnique(user *entity.User, self int64) error {
	for id, u := range st.users {
		if id == self {
			continue
		}
		if u.Username == user.Username {
			return domain.NewDuplicateError("username")
		}
		if u.Email == user.Email {
			return domain.NewDuplicateError("email")
		}
	}
	return nil
}
