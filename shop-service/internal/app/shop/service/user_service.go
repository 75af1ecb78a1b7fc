package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/pkg/metrics"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/util"
)

// UserService управляет пользователями магазина и выдает токены доступа
// Хэш пароля никогда не попадает в ответы: поле исключено из JSON
type UserService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
	clock      Clock
}

func NewUserService(userRepo repository.UserRepository, jwtManager *util.JWTManager, clock Clock) *UserService {
	return &UserService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		clock:      clock,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ResolveCustomer реализует CustomerResolver: возвращает клиента без учетных данных
func (s *UserService) ResolveCustomer(ctx context.Context, id int64) (entity.Customer, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Customer{}, ErrCustomerNotFound
		}
		return entity.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return user.ToCustomer(), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// UpdateUser применяет переданные поля; новый пароль хэшируется заново
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *entity.UpdateUserRequest) (*entity.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var passwordHash string
	if req.Password != nil {
		hash, err := util.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = hash
	}

	user, err := s.userRepo.Update(ctx, id, func(u *entity.User) error {
		if req.Name != nil {
			u.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(*req.Email)
		}
		if passwordHash != "" {
			u.PasswordHash = passwordHash
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser удаляет пользователя; заказы хранят снимок клиента и не затрагиваются
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Login проверяет email и пароль и выдает access токен
func (s *UserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()

	return &entity.LoginResponse{
		Token:     token,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}
