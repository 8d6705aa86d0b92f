package httpserver

import (
	"errors"
	"log"
	"net/http"

	"chickpick/internal/domain"

	"github.com/gin-gonic/gin"
)

func listOrdersHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			logger.Printf("orders: list user=%s: %v", currentUser(c).ID, err)
			orders = nil
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("orderID"), currentUser(c).ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
