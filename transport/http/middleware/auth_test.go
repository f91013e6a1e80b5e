package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resort/config"
	"resort/infras/jwt"
	jwtMocks "resort/infras/jwt/mocks"
	otelMocks "resort/infras/otel/mocks"
	"resort/permissions"
	"resort/shared/constant"
	"resort/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	jwtGo "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

func newRouter(t *testing.T, jwtService jwt.JWT) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	auth := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), permissions.Get(), cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(userID))
	}

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(auth.APIKey, auth.Auth, auth.RBAC)

		r.Route("/v1", func(v1 chi.Router) {
			v1.Route("/resorts", func(resorts chi.Router) {
				resorts.Get("/", ok)
				resorts.Get("/{id}", ok)
			})
			v1.Route("/bookings", func(bookings chi.Router) {
				bookings.Post("/", ok)
				bookings.Get("/", ok)
				bookings.Get("/{id}", ok)
			})
		})
	})

	return mux
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{
		UserID:   "user-1",
		Username: "alice",
		Role:     role,
		Type:     jwt.AccessToken,
		RegisteredClaims: jwtGo.RegisteredClaims{
			ID:        "token-1",
			ExpiresAt: jwtGo.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		headers    map[string]string
		mock       func(j *jwtMocks.MockJWT)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public listing needs no token",
			method:     http.MethodGet,
			path:       "/v1/resorts",
			wantStatus: http.StatusOK,
		},
		{
			name:       "public listing with trailing slash",
			method:     http.MethodGet,
			path:       "/v1/resorts/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "public detail",
			method:     http.MethodGet,
			path:       "/v1/resorts/3f1c",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing authorization header",
			method:     http.MethodPost,
			path:       "/v1/bookings",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			method:     http.MethodPost,
			path:       "/v1/bookings",
			headers:    map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodPost,
			path:    "/v1/bookings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer expired"},
			mock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "claims without user",
			method:  http.MethodPost,
			path:    "/v1/bookings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer anonymous"},
			mock: func(j *jwtMocks.MockJWT) {
				c := claims(constant.RoleCustomer)
				c.UserID = ""
				j.EXPECT().ValidateToken(gomock.Any(), "anonymous", jwt.AccessToken).Return(c, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "customer books a room",
			method:  http.MethodPost,
			path:    "/v1/bookings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			mock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "customer", jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "user-1",
		},
		{
			name:    "customer reads own booking",
			method:  http.MethodGet,
			path:    "/v1/bookings/b-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			mock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "customer", jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "customer cannot list every booking",
			method:  http.MethodGet,
			path:    "/v1/bookings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer customer"},
			mock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "customer", jwt.AccessToken).Return(claims(constant.RoleCustomer), nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "admin lists every booking",
			method:  http.MethodGet,
			path:    "/v1/bookings/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer admin"},
			mock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "admin", jwt.AccessToken).Return(claims(constant.RoleAdmin), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "internal caller with api key",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			headers:    map[string]string{constant.RequestHeaderAPIKey: apiKey},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			headers:    map[string]string{constant.RequestHeaderAPIKey: "nope"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.mock != nil {
				tt.mock(jwtService)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, jwtService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
