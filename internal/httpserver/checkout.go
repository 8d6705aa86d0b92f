package httpserver

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"chickpick/internal/cart"
	"chickpick/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// wizardTracker keeps each session's place in the checkout wizard. State
// is in-memory only: a restart drops everyone back to the shipping step,
// which is the safe place to restart from.
type wizardTracker struct {
	mu      sync.Mutex
	wizards map[string]*checkout.Wizard
}

func newWizardTracker() *wizardTracker {
	return &wizardTracker{wizards: make(map[string]*checkout.Wizard)}
}

func (t *wizardTracker) get(sessionID string) *checkout.Wizard {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.wizards[sessionID]
	if !ok {
		w = checkout.NewWizard()
		t.wizards[sessionID] = w
	}
	return w
}

func (t *wizardTracker) reset(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.wizards, sessionID)
}

func quoteHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Store(c.Request.Context(), cartSessionID(c))
		quote := checkout.Price(store.State().SubtotalCents(), c.Query("promo"))
		c.JSON(http.StatusOK, quote)
	}
}

func getWizardHandler(wizards *wizardTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := wizards.get(cartSessionID(c))
		c.JSON(http.StatusOK, gin.H{"step": w.Step()})
	}
}

func advanceWizardHandler(wizards *wizardTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := wizards.get(cartSessionID(c))
		c.JSON(http.StatusOK, gin.H{"step": w.Next()})
	}
}

func rewindWizardHandler(wizards *wizardTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := wizards.get(cartSessionID(c))
		c.JSON(http.StatusOK, gin.H{"step": w.Prev()})
	}
}

type placeOrderRequest struct {
	Shipping  checkout.ShippingInfo `json:"shipping"`
	PromoCode string                `json:"promoCode"`

	// Card fields are accepted for wizard parity and discarded; no payment
	// processor is involved.
	Payment map[string]string `json:"payment,omitempty"`
}

func placeOrderHandler(svc checkoutService, carts *cart.Manager, wizards *wizardTracker, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		sessionID := cartSessionID(c)
		store := carts.Store(c.Request.Context(), sessionID)

		order, err := svc.PlaceOrder(c.Request.Context(), accessToken(c), store, req.Shipping, req.PromoCode)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrNotAuthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
			case errors.Is(err, checkout.ErrInvalidShipping):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			default:
				logger.Printf("checkout: place order session=%s: %v", sessionID, err)
				c.JSON(http.StatusBadGateway, gin.H{"message": "order could not be placed"})
			}
			return
		}

		wizards.reset(sessionID)
		c.JSON(http.StatusCreated, order)
	}
}
