package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gharbazaar/internal/auth"
	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) ListSummaries(ctx context.Context) ([]repository.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserSummary), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, apperrors.Envelope{Success: true})
}

func expiredToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestRequireAuth(t *testing.T) {
	const secret = "test-secret"
	jwtService := auth.NewJWTService(secret)

	validToken := func(t *testing.T, userID uint) string {
		t.Helper()
		token, err := jwtService.GenerateToken(userID, "test@example.com")
		assert.NoError(t, err)
		return token
	}

	tests := []struct {
		name           string
		authorization  func(t *testing.T) string
		setupMock      func(*mockUserRepo)
		expectedStatus int
	}{
		{
			name:           "missing header",
			authorization:  func(*testing.T) string { return "" },
			setupMock:      func(*mockUserRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "blank bearer token",
			authorization:  func(*testing.T) string { return "Bearer " },
			setupMock:      func(*mockUserRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authorization:  func(t *testing.T) string { return "Bearer " + expiredToken(t, secret, 1) },
			setupMock:      func(*mockUserRepo) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			authorization:  func(*testing.T) string { return "Bearer not.a.token" },
			setupMock:      func(*mockUserRepo) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:          "token signed with another secret",
			authorization: func(t *testing.T) string {
				token, err := auth.NewJWTService("another-secret").GenerateToken(1, "test@example.com")
				assert.NoError(t, err)
				return "Bearer " + token
			},
			setupMock:      func(*mockUserRepo) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:          "account deleted after token was issued",
			authorization: func(t *testing.T) string { return "Bearer " + validToken(t, 1) },
			setupMock: func(m *mockUserRepo) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "valid token passes through",
			authorization: func(t *testing.T) string { return "Bearer " + validToken(t, 1) },
			setupMock: func(m *mockUserRepo) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepo)
			tt.setupMock(users)
			mw := NewAuthMiddleware(jwtService, users)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header := tt.authorization(t); header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := mw.RequireAuth(okHandler)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body apperrors.Envelope
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus == http.StatusOK, body.Success)
			users.AssertExpectations(t)
		})
	}
}

func TestRequireAuth_AttachesUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateToken(7, "sita@example.com")
	assert.NoError(t, err)

	users := new(mockUserRepo)
	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Email: "sita@example.com"}, nil)
	mw := NewAuthMiddleware(jwtService, users)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var attached *model.User
	handler := func(c echo.Context) error {
		attached = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	}
	assert.NoError(t, mw.RequireAuth(handler)(c))
	assert.NotNil(t, attached)
	assert.Equal(t, uint(7), attached.ID)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		user           *model.User
		expectedStatus int
	}{
		{name: "admin passes", user: &model.User{ID: 1, Role: model.RoleAdmin}, expectedStatus: http.StatusOK},
		{name: "regular user denied", user: &model.User{ID: 2, Role: model.RoleUser}, expectedStatus: http.StatusForbidden},
		{name: "no user in context", user: nil, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMiddleware(auth.NewJWTService("test-secret"), new(mockUserRepo))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.user != nil {
				c.Set("current_user", tt.user)
			}

			assert.NoError(t, mw.RequireAdmin(okHandler)(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
