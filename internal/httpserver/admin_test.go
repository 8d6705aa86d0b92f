package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chickpick/internal/domain"
	ordersvc "chickpick/internal/service/order"
)

func adminDeps() Deps {
	deps := testDeps()
	deps.IdentitySvc = &stubIdentityService{
		user: &domain.Profile{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin},
	}
	return deps
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	deps := adminDeps()
	orderSvc := &stubOrderService{}
	deps.OrderSvc = orderSvc
	router := mustRouter(t, deps)

	body := `{"status":"SHIPPED"}`
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/o1/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
	if orderSvc.lastStatus != "SHIPPED" {
		t.Fatalf("expected status forwarded, got %q", orderSvc.lastStatus)
	}
}

func TestAdminUpdateOrderStatus_Invalid(t *testing.T) {
	deps := adminDeps()
	deps.OrderSvc = &stubOrderService{statusErr: ordersvc.ErrInvalidStatus}
	router := mustRouter(t, deps)

	body := `{"status":"TELEPORTED"}`
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/o1/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminCreateProduct(t *testing.T) {
	router := mustRouter(t, adminDeps())

	body := `{"slug":"velvet-blush","name":"Velvet Blush","priceCents":2000,"stockQuantity":80}`
	req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"slug":"velvet-blush"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	deps := adminDeps()
	deps.CatalogSvc = &stubCatalogService{err: domain.ErrNotFound}
	router := mustRouter(t, deps)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/missing", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminListUsers(t *testing.T) {
	deps := adminDeps()
	deps.ProfileRepo = &stubProfileDirectory{
		profiles: []domain.Profile{{ID: "u1", Email: "jane@example.com", Role: domain.RoleCustomer}},
	}
	router := mustRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"email":"jane@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminMetrics(t *testing.T) {
	deps := adminDeps()
	deps.OrderSvc = &stubOrderService{orderCount: 12, revenueCents: 55000}
	deps.ProfileRepo = &stubProfileDirectory{count: 7}
	deps.ProductRepo = &stubProductCounter{count: 10}
	router := mustRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp metricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := metricsResponse{OrderCount: 12, RevenueCents: 55000, CustomerCount: 7, ProductCount: 10}
	if resp != want {
		t.Fatalf("unexpected metrics %+v", resp)
	}
}
