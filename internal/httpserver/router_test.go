package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"chickpick/internal/cache"
	"chickpick/internal/cart"
	"chickpick/internal/domain"
	"chickpick/internal/service/catalog"
	"chickpick/internal/service/checkout"
	"chickpick/internal/service/identity"
	reviewsvc "chickpick/internal/service/review"

	"github.com/gin-gonic/gin"
)

var errTest = errors.New("boom")

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubIdentityService struct {
	user      *domain.Profile
	signupErr error
	loginErr  error
	meErr     error
}

func (s *stubIdentityService) Signup(_ context.Context, _ identity.SignupInput) (*domain.Profile, error) {
	return s.user, s.signupErr
}

func (s *stubIdentityService) Login(_ context.Context, _, _ string) (*domain.Profile, string, string, error) {
	return s.user, "access", "refresh", s.loginErr
}

func (s *stubIdentityService) Current(_ context.Context, _ string) (*domain.Profile, error) {
	return s.user, s.meErr
}

func (s *stubIdentityService) AccessTTLSeconds() int {
	return 3600
}

type stubCatalogService struct {
	products   []domain.Product
	product    *domain.Product
	categories []domain.Category
	err        error
}

func (s *stubCatalogService) ListProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) ListFeatured(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogService) GetBySlug(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.product, s.err
}

func (s *stubCatalogService) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.product, s.err
}

func (s *stubCatalogService) ListCategories(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubCatalogService) CreateProduct(_ context.Context, in catalog.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: "new", Slug: in.Slug, Name: in.Name, PriceCents: in.PriceCents}, nil
}

func (s *stubCatalogService) UpdateProduct(_ context.Context, id string, in catalog.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id, Slug: in.Slug, Name: in.Name, PriceCents: in.PriceCents}, nil
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, _ string) error {
	return s.err
}

type stubReviewService struct {
	review  *domain.Review
	summary *reviewsvc.Summary
	err     error
}

func (s *stubReviewService) Create(_ context.Context, _, _ string, _ int, _ string) (*domain.Review, error) {
	return s.review, s.err
}

func (s *stubReviewService) ListByProduct(_ context.Context, _ string) (*reviewsvc.Summary, error) {
	return s.summary, s.err
}

type stubOrderService struct {
	orders       []domain.Order
	order        *domain.Order
	err          error
	statusErr    error
	lastStatus   string
	orderCount   int64
	revenueCents int64
}

func (s *stubOrderService) ListForUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.order == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.order, s.err
}

func (s *stubOrderService) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _, status string) error {
	s.lastStatus = status
	return s.statusErr
}

func (s *stubOrderService) Metrics(_ context.Context) (int64, int64, error) {
	return s.orderCount, s.revenueCents, s.err
}

type stubCheckoutService struct {
	order *domain.Order
	err   error
}

func (s *stubCheckoutService) PlaceOrder(_ context.Context, _ string, _ checkout.CartStore, _ checkout.ShippingInfo, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubProfileDirectory struct {
	profiles []domain.Profile
	count    int64
	err      error
}

func (s *stubProfileDirectory) ListAll(_ context.Context) ([]domain.Profile, error) {
	return s.profiles, s.err
}

func (s *stubProfileDirectory) Count(_ context.Context) (int64, error) {
	return s.count, s.err
}

type stubProductCounter struct {
	count int64
	err   error
}

func (s *stubProductCounter) Count(_ context.Context) (int64, error) {
	return s.count, s.err
}

// testDeps wires stubs plus a real in-memory cart manager.
func testDeps() Deps {
	return Deps{
		IdentitySvc: &stubIdentityService{},
		CatalogSvc:  &stubCatalogService{},
		ReviewSvc:   &stubReviewService{},
		OrderSvc:    &stubOrderService{},
		CheckoutSvc: &stubCheckoutService{},
		Carts:       cart.NewManager(cache.NewMemoryStash(), logDiscard()),
		ProfileRepo: &stubProfileDirectory{},
		ProductRepo: &stubProductCounter{},
	}
}

func mustRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestHealthz(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz_NoDB(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without db, got %d", rec.Code)
	}
}

func TestAuthMiddleware_FailsOpenOnInvalidToken(t *testing.T) {
	deps := testDeps()
	router := mustRouter(t, deps)

	// Identity resolves nothing, yet a public route still answers.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRequireAuth_Unauthorized(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_ForbiddenForCustomer(t *testing.T) {
	deps := testDeps()
	deps.IdentitySvc = &stubIdentityService{
		user: &domain.Profile{ID: "u1", Role: domain.RoleCustomer},
	}
	router := mustRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	deps := testDeps()
	deps.IdentitySvc = &stubIdentityService{
		user: &domain.Profile{ID: "a1", Role: domain.RoleAdmin},
	}
	router := mustRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartSessionMiddleware_MintsSession(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(cartSessionHeader) == "" {
		t.Fatalf("expected a minted %s header", cartSessionHeader)
	}
}

func TestCartSessionMiddleware_EchoesSession(t *testing.T) {
	router := mustRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(cartSessionHeader, "session-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(cartSessionHeader); got != "session-42" {
		t.Fatalf("expected session echoed back, got %q", got)
	}
}
