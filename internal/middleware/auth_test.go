package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkovacev/liftlog/internal/auth"
	"github.com/dkovacev/liftlog/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoginChecker := NewMockloginChecker(ctrl)
	authMiddleware := middleware.NewAuthMiddlewareHandler(mockLoginChecker)

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		expectedStatusCode int
		mockIsLogged       bool
		expectCheckerCall  bool
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "RootAllowedWithoutToken",
			path:               "/",
			method:             "GET",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "ProtectedPathWithoutToken",
			path:               "/workout/session",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/workout/session",
			method:             "GET",
			token:              "valid-token",
			expectedStatusCode: http.StatusOK,
			mockIsLogged:       true,
			expectCheckerCall:  true,
		},
		{
			name:               "InvalidToken",
			path:               "/workout/session",
			method:             "GET",
			token:              "invalid-token",
			expectedStatusCode: http.StatusUnauthorized,
			mockIsLogged:       false,
			expectCheckerCall:  true,
		},
		{
			name:               "OptionsAlwaysAllowed",
			path:               "/workout/session",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.expectCheckerCall {
				mockLoginChecker.EXPECT().
					IsLogged(gomock.Any(), tc.token).
					Return(tc.mockIsLogged, nil)
			}

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set(middleware.AuthTokenHeader, tc.token)
			}
			rec := httptest.NewRecorder()

			handler := authMiddleware.AuthCheck()(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				},
			))
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestAuthMiddlewareHandler_AuthCheck_loginTestChecker(t *testing.T) {
	loginChecker := auth.NewLoginTestChecker()
	loginChecker.LoggedSessions["known-token"] = true
	authMiddleware := middleware.NewAuthMiddlewareHandler(loginChecker)

	handler := authMiddleware.AuthCheck()(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))

	req := httptest.NewRequest("GET", "/workout/prs", nil)
	req.Header.Set(middleware.AuthTokenHeader, "known-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/workout/prs", nil)
	req.Header.Set(middleware.AuthTokenHeader, "unknown-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
