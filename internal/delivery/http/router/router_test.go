package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"showreel/config"
	"showreel/internal/delivery/http/middleware"
	"showreel/internal/delivery/http/router/handler"
	"showreel/internal/delivery/http/validator"
	"showreel/internal/domain/entity"
	domainerrors "showreel/internal/domain/errors"
	"showreel/internal/domain/service"
	"showreel/internal/infra/auth"
	"showreel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase serves canned responses so the tests exercise routing,
// middleware, and the response envelope rather than business rules.
type stubUsecase struct {
	user *entity.User
}

func newStubUsecase() *stubUsecase {
	return &stubUsecase{
		user: &entity.User{
			ID:    uuid.New(),
			Email: "test@example.com",
			Name:  "Test User",
			Role:  entity.RoleUser,
		},
	}
}

func (s *stubUsecase) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Email == "taken@example.com" {
		return nil, domainerrors.ErrRegistrationRejected.WrapMessage("email already registered")
	}

	return &usecase.AuthOutput{Token: "stub-token", User: s.user}, nil
}

func (s *stubUsecase) Authenticate(_ context.Context, input *usecase.AuthenticateInput) (*usecase.AuthOutput, error) {
	if input.Password != "testPassword123" {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	return &usecase.AuthOutput{Token: "stub-token", User: s.user}, nil
}

func (s *stubUsecase) GetUser(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if id != s.user.ID {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("account lookup failed")
	}

	return s.user, nil
}

func (s *stubUsecase) EnsureAdminUser(_ context.Context) error {
	return nil
}

func (s *stubUsecase) ListBlockedIPs(_ context.Context) []*usecase.BlockedIP {
	return []*usecase.BlockedIP{
		{IP: "203.0.113.7", FailedAttempts: 5, BlockedUntil: time.Now().Add(15 * time.Minute)},
	}
}

func (s *stubUsecase) ClearBlockedIP(_ context.Context, ip string) bool {
	return ip == "203.0.113.7"
}

func (s *stubUsecase) ClearAllBlocks(_ context.Context) int {
	return 1
}

func newTestServer(t *testing.T) (*echo.Echo, *stubUsecase, service.TokenService) {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.JWT = "test_jwt_secret_key_very_long_for_testing"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := newStubUsecase()

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(uc, logger),
		AdminHandler:   handler.NewAdminHandler(uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenService),
	})
	r.RegisterRoutes(e)

	return e, uc, tokenService
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Register(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"test@example.com","password":"testPassword123","name":"Test User"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"stub-token"`)
	assert.Contains(t, rec.Body.String(), `"email":"test@example.com"`)
}

func TestRouter_Register_Rejected(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"taken@example.com","password":"testPassword123"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "REGISTRATION_REJECTED")
	// The envelope carries no rejection cause.
	assert.NotContains(t, rec.Body.String(), "already registered")
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"test@example.com","password":"wrongPassword"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestRouter_Login_MissingFields(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/login", `{"email":"test@example.com"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Login_Success(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"test@example.com","password":"testPassword123"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"stub-token"`)
}

func TestRouter_Me(t *testing.T) {
	e, uc, tokenService := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokenService.GenerateToken(uc.user)
	require.NoError(t, err)

	rec = doJSON(e, http.MethodGet, "/auth/me", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"test@example.com"`)
}

func TestRouter_AdminGroup_RequiresAdminRole(t *testing.T) {
	e, uc, tokenService := newTestServer(t)

	userToken, err := tokenService.GenerateToken(uc.user)
	require.NoError(t, err)

	rec := doJSON(e, http.MethodGet, "/admin/blocked-ips", "", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := tokenService.GenerateToken(&entity.User{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Role:  entity.RoleAdmin,
	})
	require.NoError(t, err)

	rec = doJSON(e, http.MethodGet, "/admin/blocked-ips", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "203.0.113.7")
}

func TestRouter_AdminClearBlockedIP(t *testing.T) {
	e, _, tokenService := newTestServer(t)

	adminToken, err := tokenService.GenerateToken(&entity.User{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Role:  entity.RoleAdmin,
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodDelete, "/admin/blocked-ips/203.0.113.7", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/admin/blocked-ips/198.51.100.9", "", adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/admin/blocked-ips", "", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cleared":1`)
}

func TestRouter_Health(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
