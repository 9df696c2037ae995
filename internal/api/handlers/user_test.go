package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/services/mocks"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister(t *testing.T) {
	t.Run("Success - User Created", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		expected := &models.RegisterRequest{Username: "ana", Email: "ana@example.com", Password: "secret123"}
		mockUserService.On("Register", mock.Anything, expected).
			Return(&models.User{ID: uuid.New(), Username: "ana", Email: "ana@example.com", Role: models.RoleShopper, Password: "hash", VerificationCode: "123456"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/register",
			strings.NewReader(`{"username":"ana","email":"ana@example.com","password":"secret123"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash")
		assert.NotContains(t, rr.Body.String(), "123456")
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		userHandler := handlers.NewUserHandler(mocks.NewMockUserService(t))

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/register",
			strings.NewReader(`{"username":"ana","email":"not-an-email","password":"secret123"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Duplicate", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Register", mock.Anything, mock.Anything).Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/register",
			strings.NewReader(`{"username":"ana","email":"ana@example.com","password":"secret123"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Register().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestVerifyEmail(t *testing.T) {
	mockUserService := mocks.NewMockUserService(t)
	userHandler := handlers.NewUserHandler(mockUserService)

	mockUserService.On("VerifyEmail", mock.Anything, &models.VerifyEmailRequest{Email: "ana@example.com", Code: "123456"}).Return(nil).Once()

	req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/verify-email", strings.NewReader(`{"email":"ana@example.com","code":"123456"}`), nil)
	rr := httptest.NewRecorder()

	userHandler.VerifyEmail().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, &models.LoginRequest{Username: "ana", Password: "secret123"}).
			Return(&models.LoginResponse{Token: "jwt", ExpiresIn: 86400, Role: models.RoleShopper}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"secret123"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.LoginResponse
		testutils.DecodeAPIResponse(t, rr, &got)
		assert.Equal(t, "jwt", got.Token)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"x"}`), nil)
		rr := httptest.NewRecorder()

		userHandler.Login().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}

func TestProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockUserService := mocks.NewMockUserService(t)
		userHandler := handlers.NewUserHandler(mockUserService)

		mockUserService.On("GetUserByID", mock.Anything, userID).Return(&models.User{ID: userID, Username: "ana"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/profile", nil, userID, models.RoleShopper, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		userHandler := handlers.NewUserHandler(mocks.NewMockUserService(t))

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/profile", nil, nil)
		rr := httptest.NewRecorder()

		userHandler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
