package repository

import (
	"context"
	"strings"
	"sync"

	"storefront/shop-service/internal/app/shop/entity"
)

type userRepository struct {
	store *Store[entity.User]
	// emailMu сериализует операции, которые могут нарушить уникальность email
	emailMu sync.Mutex
}

// NewUserRepository создает in-memory хранилище пользователей
func NewUserRepository() UserRepository {
	return &userRepository{store: NewStore[entity.User]()}
}

// Create возвращает ErrEmailTaken, если email уже занят (без учета регистра)
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	if r.emailExists(user.Email, 0) {
		return ErrEmailTaken
	}

	r.store.Insert(func(id int64) entity.User {
		user.ID = id
		return *user
	})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users := r.store.Filter(func(u entity.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	return r.store.List(), nil
}

func (r *userRepository) Update(ctx context.Context, id int64, mutate func(*entity.User) error) (*entity.User, error) {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	// Под emailMu набор email не меняется, поэтому снимок можно взять до блокировки коллекции
	taken := make(map[string]struct{})
	for _, u := range r.store.List() {
		if u.ID != id {
			taken[strings.ToLower(u.Email)] = struct{}{}
		}
	}

	user, err := r.store.Update(id, func(u *entity.User) error {
		updated := *u
		if err := mutate(&updated); err != nil {
			return err
		}
		if _, ok := taken[strings.ToLower(updated.Email)]; ok {
			return ErrEmailTaken
		}
		updated.ID = id
		*u = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()

	_, err := r.store.DeleteIf(id, nil)
	return err
}

// emailExists вызывается под emailMu; exceptID исключает самого пользователя
func (r *userRepository) emailExists(email string, exceptID int64) bool {
	for _, u := range r.store.List() {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
