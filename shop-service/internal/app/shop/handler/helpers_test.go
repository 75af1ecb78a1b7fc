package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/service"
	"storefront/shop-service/internal/app/shop/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// Хелперы для создания тестового окружения

type testEnv struct {
	router     *gin.Engine
	jwtManager *util.JWTManager
	users      *service.UserService
	categories *service.CategoryService
	products   *service.ProductService
	coupons    *service.CouponService
	orders     *service.OrderService
}

func newTestEnv() *testEnv {
	clock := service.ClockFunc(func() time.Time { return testNow })
	jwtManager := util.NewJWTManager("test-secret-key", time.Hour)

	categoryRepo := repository.NewCategoryRepository()
	categorySvc := service.NewCategoryService(categoryRepo, nil, clock)
	productSvc := service.NewProductService(repository.NewProductRepository(), categoryRepo, nil, clock)
	couponSvc := service.NewCouponService(repository.NewCouponRepository(), clock)
	userSvc := service.NewUserService(repository.NewUserRepository(), jwtManager, clock)
	orderSvc := service.NewOrderService(repository.NewOrderRepository(), userSvc, productSvc, nil, clock)

	handlers := &Handlers{
		Categories: NewCategoryHandler(categorySvc),
		Products:   NewProductHandler(productSvc),
		Coupons:    NewCouponHandler(couponSvc),
		Orders:     NewOrderHandler(orderSvc),
		Users:      NewUserHandler(userSvc),
		Health:     NewHealthHandler("shop-service", nil),
	}

	return &testEnv{
		router:     SetupRoutes(handlers, NewAuthMiddleware(jwtManager), "shop-service"),
		jwtManager: jwtManager,
		users:      userSvc,
		categories: categorySvc,
		products:   productSvc,
		coupons:    couponSvc,
		orders:     orderSvc,
	}
}

func (e *testEnv) token(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := e.jwtManager.GenerateAccessToken(userID, "test@example.com", "USER")
	require.NoError(t, err)
	return token
}

// do выполняет запрос через роутер; body сериализуется в JSON, если не nil
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (e *testEnv) mustCreateUser(t *testing.T) *entity.User {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/users", entity.CreateUserRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[entity.User](t, w)
	return &user
}
