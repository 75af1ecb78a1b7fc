package handler

import (
	"net/http"
	"testing"

	"storefront/shop-service/internal/app/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_CreateUser_HidesPassword(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/users", entity.CreateUserRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "secret123",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret123")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_CreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.mustCreateUser(t)

	w := env.do(t, http.MethodPost, "/api/v1/users", entity.CreateUserRequest{
		Name:     "Other",
		Email:    "MARIA@example.com",
		Password: "secret456",
	}, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Login(t *testing.T) {
	env := newTestEnv()
	user := env.mustCreateUser(t)

	tests := []struct {
		name     string
		password string
		code     int
	}{
		{"valid credentials", "secret123", http.StatusOK},
		{"wrong password", "wrong-password", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/login", entity.LoginRequest{
				Email:    "maria@example.com",
				Password: tt.password,
			}, "")

			require.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				return
			}

			resp := decode[entity.LoginResponse](t, w)
			claims, err := env.jwtManager.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)

			// Токен открывает защищенные маршруты
			w = env.do(t, http.MethodGet, "/api/v1/orders", nil, resp.Token)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestUserHandler_GetAllUsers_Empty(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/v1/users", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "empty_result", decode[entity.ErrorResponse](t, w).Error)
}
