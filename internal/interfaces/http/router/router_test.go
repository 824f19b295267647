package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adminapp "github.com/tazamart/backend/internal/application/admin"
	"github.com/tazamart/backend/internal/application/checkout"
	"github.com/tazamart/backend/internal/application/store"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/infrastructure/config"
	"github.com/tazamart/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.HTTP.RequestTimeout = 5 * time.Second
	cfg.HTTP.MaxBodySize = 1 << 20
	return cfg
}

func testEngine() *gin.Engine {
	st := store.New(store.NewState(catalog.DefaultProducts(), nil, nil, nil, order.Customer{}, "en", "light"), nil, nil)
	adminSvc := adminapp.New(st, nil, adminapp.Config{Password: "router-test-pw"}, nil)
	checkoutSvc := checkout.New(st, nil, nil)

	return Setup(testConfig(), zap.NewNop(), Handlers{
		Catalog:  handler.NewCatalogHandler(st),
		Cart:     handler.NewCartHandler(st),
		Checkout: handler.NewCheckoutHandler(st, checkoutSvc),
		Profile:  handler.NewProfileHandler(st),
		Admin:    handler.NewAdminHandler(adminSvc, nil),
		System:   handler.NewSystemHandler("test", nil),
	}, adminSvc)
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutesMounted(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/v1/products", http.StatusOK},
		{"GET", "/api/v1/products/1", http.StatusOK},
		{"GET", "/api/v1/cart", http.StatusOK},
		{"GET", "/api/v1/orders", http.StatusOK},
		{"GET", "/api/v1/profile", http.StatusOK},
		{"GET", "/api/v1/favorites", http.StatusOK},
		{"GET", "/api/v1/preferences", http.StatusOK},
	}
	for _, tc := range cases {
		w := perform(engine, tc.method, tc.path)
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminRoutesGuarded(t *testing.T) {
	engine := testEngine()

	for _, path := range []string{
		"/api/v1/admin/orders",
	} {
		w := perform(engine, "GET", path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := perform(engine, "POST", "/api/v1/admin/refresh")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	engine := testEngine()
	w := perform(engine, "GET", "/api/v1/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDHeaderSet(t *testing.T) {
	engine := testEngine()
	w := perform(engine, "GET", "/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSecurityHeadersSet(t *testing.T) {
	engine := testEngine()
	w := perform(engine, "GET", "/health")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
