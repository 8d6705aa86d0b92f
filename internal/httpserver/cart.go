package httpserver

import (
	"errors"
	"net/http"

	"chickpick/internal/cart"
	"chickpick/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	SessionID     string      `json:"sessionId"`
	Lines         []cart.Line `json:"lines"`
	ItemCount     int         `json:"itemCount"`
	SubtotalCents int64       `json:"subtotalCents"`
	IsOpen        bool        `json:"isOpen"`
}

func toCartResponse(sessionID string, state cart.State) cartResponse {
	lines := state.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{
		SessionID:     sessionID,
		Lines:         lines,
		ItemCount:     state.ItemCount(),
		SubtotalCents: state.SubtotalCents(),
		IsOpen:        state.IsOpen,
	}
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(carts *cart.Manager, catalogSvc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		p, err := catalogSvc.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		store.Add(c.Request.Context(), *p, req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func setCartQuantityHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		store.SetQuantity(c.Request.Context(), c.Param("productID"), req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}

func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		store.Remove(c.Request.Context(), c.Param("productID"))
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}

func setCartOpenHandler(carts *cart.Manager, open bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		store.SetOpen(open)
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}

func toggleCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)
		store.ToggleOpen()
		c.JSON(http.StatusOK, toCartResponse(sessionID, store.State()))
	}
}
