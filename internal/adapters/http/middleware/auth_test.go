package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/api/internal/adapters/http/middleware"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/port/mock"
	"github.com/sweetshop/api/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *mock.MockTokenIssuer, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	tokens := mock.NewMockTokenIssuer(ctrl)

	handlerCalls := 0
	router := gin.New()
	group := router.Group("/sweets")
	group.Use(middleware.Authenticate(tokens))
	group.POST("/:id/restock", middleware.AdminOnly(), func(c *gin.Context) {
		handlerCalls++
		c.Status(http.StatusOK)
	})

	return router, tokens, &handlerCalls
}

func restockRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/sweets/1/restock", strings.NewReader(`{"quantity":5}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticate(t *testing.T) {
	t.Run("missing token is unauthorized", func(t *testing.T) {
		router, _, handlerCalls := setupAuthRouter(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, restockRequest(""))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
		}
		if *handlerCalls != 0 {
			t.Fatalf("expected handler not to be called, got %d calls", *handlerCalls)
		}
	})

	t.Run("malformed authorization header is unauthorized", func(t *testing.T) {
		router, _, handlerCalls := setupAuthRouter(t)

		req := restockRequest("")
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
		}
		if *handlerCalls != 0 {
			t.Fatalf("expected handler not to be called, got %d calls", *handlerCalls)
		}
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		router, tokens, handlerCalls := setupAuthRouter(t)
		tokens.EXPECT().
			Verify("bad-token").
			Return(nil, serviceerrors.NewUnauthorizedError("invalid or expired token"))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, restockRequest("bad-token"))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
		}
		if *handlerCalls != 0 {
			t.Fatalf("expected handler not to be called, got %d calls", *handlerCalls)
		}
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("user role is forbidden", func(t *testing.T) {
		router, tokens, handlerCalls := setupAuthRouter(t)
		tokens.EXPECT().
			Verify("user-token").
			Return(&domain.Identity{UserID: "507f1f77bcf86cd799439011", Email: "user@example.com", Role: domain.RoleUser}, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, restockRequest("user-token"))

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("expected status %d, got %d", http.StatusForbidden, recorder.Code)
		}
		if *handlerCalls != 0 {
			t.Fatalf("expected handler not to be called, got %d calls", *handlerCalls)
		}
	})

	t.Run("admin role reaches the handler", func(t *testing.T) {
		router, tokens, handlerCalls := setupAuthRouter(t)
		tokens.EXPECT().
			Verify("admin-token").
			Return(&domain.Identity{UserID: "507f1f77bcf86cd799439012", Email: "admin@example.com", Role: domain.RoleAdmin}, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, restockRequest("admin-token"))

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
		}
		if *handlerCalls != 1 {
			t.Fatalf("expected handler to be called once, got %d calls", *handlerCalls)
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		router := gin.New()
		handlerCalls := 0
		router.POST("/sweets/:id/restock", middleware.AdminOnly(), func(c *gin.Context) {
			handlerCalls++
			c.Status(http.StatusOK)
		})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, restockRequest(""))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, recorder.Code)
		}
		if handlerCalls != 0 {
			t.Fatalf("expected handler not to be called, got %d calls", handlerCalls)
		}
	})
}
