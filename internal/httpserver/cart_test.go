package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chickpick/internal/domain"
)

func lipstick() *domain.Product {
	return &domain.Product{
		ID:            "p1",
		Slug:          "dreamer-matte-lipstick",
		Name:          "Dreamer Matte Lipstick",
		PriceCents:    1850,
		SwatchColor:   "#FF69B4",
		StockQuantity: 150,
	}
}

func TestAddCartItem(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{product: lipstick()}
	router := mustRouter(t, deps)

	body := `{"productId":"p1","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ItemCount != 2 || resp.SubtotalCents != 3700 {
		t.Fatalf("unexpected cart %+v", resp)
	}
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{}
	router := mustRouter(t, deps)

	body := `{"productId":"missing","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartPersistsAcrossRequests(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{product: lipstick()}
	router := mustRouter(t, deps)

	body := `{"productId":"p1","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(cartSessionHeader, "s1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ItemCount != 1 {
		t.Fatalf("expected 1 item for the same session, got %d", resp.ItemCount)
	}
}

func TestSetCartQuantity_ZeroRemovesLine(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{product: lipstick()}
	router := mustRouter(t, deps)

	body := `{"productId":"p1","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodPatch, "/cart/items/p1", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "s1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ItemCount != 0 {
		t.Fatalf("expected empty cart after quantity 0, got %d items", resp.ItemCount)
	}
}

func TestRemoveCartItem(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogService{product: lipstick()}
	router := mustRouter(t, deps)

	body := `{"productId":"p1","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(cartSessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	req = httptest.NewRequest(http.MethodDelete, "/cart/items/p1", nil)
	req.Header.Set(cartSessionHeader, "s1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Lines) != 0 {
		t.Fatalf("expected no lines after delete, got %+v", resp.Lines)
	}
}

func TestToggleCart(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodPost, "/cart/toggle", nil)
	req.Header.Set(cartSessionHeader, "s1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsOpen {
		t.Fatalf("expected drawer open after toggle")
	}

	req = httptest.NewRequest(http.MethodPost, "/cart/close", nil)
	req.Header.Set(cartSessionHeader, "s1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsOpen {
		t.Fatalf("expected drawer closed after close")
	}
}
