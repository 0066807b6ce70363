package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vostrano/heritage-backend/internal/logger"
	"github.com/vostrano/heritage-backend/internal/requestdata"
	"github.com/vostrano/heritage-backend/internal/types"
)

type fakeAuthService struct {
	validToken string
	userID     uuid.UUID
	role       string
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, user *types.User) error { return nil }
func (f *fakeAuthService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	return "", "", nil
}
func (f *fakeAuthService) RefreshUser(ctx context.Context) (string, string, error) { return "", "", nil }
func (f *fakeAuthService) LogoutUser(ctx context.Context) error                    { return nil }
func (f *fakeAuthService) GetAccessTTL() time.Duration                             { return time.Hour }

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != f.validToken {
		return nil, fmt.Errorf("invalid token")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      f.userID,
		Role:        f.role,
	}), nil
}

func testRouter(t *testing.T, auth *fakeAuthService, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	am := NewAuthMiddleware(log, auth)

	router := gin.New()
	group := router.Group("/")
	group.Use(am.RequireAuth())
	if len(roles) > 0 {
		group.Use(am.RequireRole(roles...))
	}
	group.GET("/secure", func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID.String()})
	})
	return router
}

func TestRequireAuthMissingToken(t *testing.T) {
	router := testRouter(t, &fakeAuthService{validToken: "good", userID: uuid.New(), role: "editor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	router := testRouter(t, &fakeAuthService{validToken: "good", userID: uuid.New(), role: "editor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	router := testRouter(t, &fakeAuthService{validToken: "good", userID: uuid.New(), role: "editor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	router := testRouter(t, &fakeAuthService{validToken: "good", userID: uuid.New(), role: "editor"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure?token=good", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	auth := &fakeAuthService{validToken: "good", userID: uuid.New(), role: "viewer"}
	router := testRouter(t, auth, "admin", "editor")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", w.Code)
	}

	auth.role = "admin"
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}
