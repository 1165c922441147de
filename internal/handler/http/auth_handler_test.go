package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shopHttp "github.com/ecomdemo/shop-service/internal/handler/http"
	"github.com/ecomdemo/shop-service/internal/user"
)

type mockUserService struct {
	registerFunc     func(ctx context.Context, username, password string) (*user.User, error)
	authenticateFunc func(ctx context.Context, username, password string) (*user.User, error)
	getByIDFunc      func(ctx context.Context, id int64) (*user.User, error)
}

func (m *mockUserService) Register(ctx context.Context, username, password string) (*user.User, error) {
	return m.registerFunc(ctx, username, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	return m.authenticateFunc(ctx, username, password)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

func newAuthRouter(svc user.Service) *chi.Mux {
	router := chi.NewRouter()
	shopHttp.NewAuthHandler(svc).RegisterRoutes(router)
	return router
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		registerFunc func(ctx context.Context, username, password string) (*user.User, error)
		wantStatus   int
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"pw1"}`,
			registerFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return &user.User{ID: 1, Username: username}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate_username",
			body: `{"username":"alice","password":"pw1"}`,
			registerFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return nil, user.ErrDuplicateUser
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing_password",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed_json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(&mockUserService{registerFunc: tt.registerFunc})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp shopHttp.UserResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, int64(1), resp.ID)
				assert.Equal(t, "alice", resp.Username)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		authenticateFunc func(ctx context.Context, username, password string) (*user.User, error)
		wantStatus       int
	}{
		{
			name: "ok",
			body: `{"username":"alice","password":"pw1"}`,
			authenticateFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return &user.User{ID: 1, Username: username}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid_credentials",
			body: `{"username":"alice","password":"wrong"}`,
			authenticateFunc: func(ctx context.Context, username, password string) (*user.User, error) {
				return nil, user.ErrInvalidCredentials
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(&mockUserService{authenticateFunc: tt.authenticateFunc})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
