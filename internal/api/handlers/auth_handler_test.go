package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/hospitalmanagement/backend/internal/api/handlers"
	"github.com/zatekoja/hospitalmanagement/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitalmanagement/backend/pkg/errors"
)

type stubAccountService struct {
	registerErr error
	authErr     error
}

func (s *stubAccountService) Register(ctx context.Context, username, email, password string, role entities.Role) (*entities.Account, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &entities.Account{ID: 1, Username: username, Email: email, Role: role}, nil
}

func (s *stubAccountService) Authenticate(ctx context.Context, email, password string) (*entities.Account, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return &entities.Account{ID: 1, Username: "jdoe", Email: email, Role: entities.RolePatient}, nil
}

type stubSessionService struct {
	destroyed []string
}

func (s *stubSessionService) Create(ctx context.Context, account *entities.Account) (*entities.Session, error) {
	return &entities.Session{Token: "token-abc", AccountID: account.ID, Username: account.Username, Email: account.Email, Role: account.Role}, nil
}

func (s *stubSessionService) Destroy(ctx context.Context, token string) error {
	s.destroyed = append(s.destroyed, token)
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	handler := handlers.NewAuthHandler(&stubAccountService{}, &stubSessionService{}, "hms_session")

	body := `{"username":"jdoe","email":"jdoe@patients.example","password":"secret","role":"Patient"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "registered", response["status"])
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	service := &stubAccountService{registerErr: apperrors.NewConflictError("username or email already registered")}
	handler := handlers.NewAuthHandler(service, &stubSessionService{}, "hms_session")

	body := `{"username":"jdoe","email":"jdoe@patients.example","password":"secret","role":"Patient"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	handler := handlers.NewAuthHandler(&stubAccountService{}, &stubSessionService{}, "hms_session")

	body := `{"email":"jdoe@patients.example","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "hms_session", cookies[0].Name)
	assert.Equal(t, "token-abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	service := &stubAccountService{authErr: apperrors.NewUnauthorizedError("invalid credentials")}
	handler := handlers.NewAuthHandler(service, &stubSessionService{}, "hms_session")

	body := `{"email":"jdoe@patients.example","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := &stubSessionService{}
	handler := handlers.NewAuthHandler(&stubAccountService{}, sessions, "hms_session")

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "hms_session", Value: "token-abc"})
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"token-abc"}, sessions.destroyed)

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	sessions := &stubSessionService{}
	handler := handlers.NewAuthHandler(&stubAccountService{}, sessions, "hms_session")

	req := httptest.NewRequest("POST", "/api/auth/logout", nil)
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessions.destroyed)
}
