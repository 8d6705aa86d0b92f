package httpserver

import (
	"context"
	"log"

	"chickpick/internal/cart"
	"chickpick/internal/domain"
	"chickpick/internal/service/catalog"
	"chickpick/internal/service/checkout"
	"chickpick/internal/service/identity"
	"chickpick/internal/service/review"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type identityService interface {
	Signup(ctx context.Context, in identity.SignupInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error)
	Current(ctx context.Context, token string) (*domain.Profile, error)
	AccessTTLSeconds() int
}

type catalogService interface {
	ListProducts(ctx context.Context, categoryName string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type reviewService interface {
	Create(ctx context.Context, productID, userID string, rating int, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) (*review.Summary, error)
}

type orderService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, orderID, userID string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Metrics(ctx context.Context) (int64, int64, error)
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, token string, store checkout.CartStore, shipping checkout.ShippingInfo, promoCode string) (*domain.Order, error)
}

type profileDirectory interface {
	ListAll(ctx context.Context) ([]domain.Profile, error)
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Deps carries the collaborators the router wires behind each route.
type Deps struct {
	IdentitySvc identityService
	CatalogSvc  catalogService
	ReviewSvc   reviewService
	OrderSvc    orderService
	CheckoutSvc checkoutService
	Carts       *cart.Manager
	ProfileRepo profileDirectory
	ProductRepo productCounter

	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", cartSessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, cartSessionHeader)
	corsMW, err := corsMiddleware(corsCfg)
	if err != nil {
		return nil, err
	}
	router.Use(corsMW)
	router.Use(authMiddleware(deps.IdentitySvc, logger))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/signup", signupHandler(deps.IdentitySvc))
	router.POST("/auth/login", loginHandler(deps.IdentitySvc))
	router.GET("/me", requireAuth(), meHandler())

	router.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/featured", listFeaturedHandler(deps.CatalogSvc, logger))
	router.GET("/products/:slug", getProductHandler(deps.CatalogSvc))
	router.GET("/products/:slug/reviews", listReviewsHandler(deps.CatalogSvc, deps.ReviewSvc, logger))
	router.POST("/products/:slug/reviews", requireAuth(), createReviewHandler(deps.CatalogSvc, deps.ReviewSvc))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc, logger))

	cartRoutes := router.Group("/cart", cartSessionMiddleware(deps.Carts))
	{
		cartRoutes.GET("", getCartHandler(deps.Carts))
		cartRoutes.POST("/items", addCartItemHandler(deps.Carts, deps.CatalogSvc))
		cartRoutes.PATCH("/items/:productID", setCartQuantityHandler(deps.Carts))
		cartRoutes.DELETE("/items/:productID", removeCartItemHandler(deps.Carts))
		cartRoutes.POST("/open", setCartOpenHandler(deps.Carts, true))
		cartRoutes.POST("/close", setCartOpenHandler(deps.Carts, false))
		cartRoutes.POST("/toggle", toggleCartHandler(deps.Carts))
	}

	wizards := newWizardTracker()
	checkoutRoutes := router.Group("/checkout", cartSessionMiddleware(deps.Carts))
	{
		checkoutRoutes.GET("/quote", quoteHandler(deps.Carts))
		checkoutRoutes.GET("/wizard", getWizardHandler(wizards))
		checkoutRoutes.POST("/wizard/next", advanceWizardHandler(wizards))
		checkoutRoutes.POST("/wizard/previous", rewindWizardHandler(wizards))
		checkoutRoutes.POST("/orders", placeOrderHandler(deps.CheckoutSvc, deps.Carts, wizards, logger))
	}

	orders := router.Group("/orders", requireAuth())
	{
		orders.GET("", listOrdersHandler(deps.OrderSvc, logger))
		orders.GET("/:orderID", getOrderHandler(deps.OrderSvc))
	}

	admin := router.Group("/admin", requireAuth(), requireAdmin())
	{
		admin.GET("/orders", adminListOrdersHandler(deps.OrderSvc, logger))
		admin.PATCH("/orders/:orderID/status", adminUpdateOrderStatusHandler(deps.OrderSvc))
		admin.POST("/products", adminCreateProductHandler(deps.CatalogSvc))
		admin.PATCH("/products/:productID", adminUpdateProductHandler(deps.CatalogSvc))
		admin.DELETE("/products/:productID", adminDeleteProductHandler(deps.CatalogSvc))
		admin.GET("/users", adminListUsersHandler(deps.ProfileRepo, logger))
		admin.GET("/metrics", adminMetricsHandler(deps.OrderSvc, deps.ProfileRepo, deps.ProductRepo))
	}

	return router, nil
}

func corsMiddleware(cfg cors.Config) (gin.HandlerFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cors.New(cfg), nil
}
