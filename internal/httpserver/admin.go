package httpserver

import (
	"errors"
	"log"
	"net/http"

	"chickpick/internal/domain"
	"chickpick/internal/service/catalog"
	ordersvc "chickpick/internal/service/order"

	"github.com/gin-gonic/gin"
)

func adminListOrdersHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			logger.Printf("admin: list orders: %v", err)
			orders = nil
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func adminUpdateOrderStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		err := svc.UpdateStatus(c.Request.Context(), c.Param("orderID"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, ordersvc.ErrInvalidStatus):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			}
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminCreateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		p, err := svc.CreateProduct(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"message": "slug already in use"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func adminUpdateProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		p, err := svc.UpdateProduct(c.Request.Context(), c.Param("productID"), req)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func adminDeleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("productID")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func adminListUsersHandler(profiles profileDirectory, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := profiles.ListAll(c.Request.Context())
		if err != nil {
			logger.Printf("admin: list users: %v", err)
			users = nil
		}
		if users == nil {
			users = []domain.Profile{}
		}
		c.JSON(http.StatusOK, users)
	}
}

type metricsResponse struct {
	OrderCount    int64 `json:"orderCount"`
	RevenueCents  int64 `json:"revenueCents"`
	CustomerCount int64 `json:"customerCount"`
	ProductCount  int64 `json:"productCount"`
}

func adminMetricsHandler(orders orderService, profiles profileDirectory, products productCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderCount, revenueCents, err := orders.Metrics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		customerCount, err := profiles.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		productCount, err := products.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, metricsResponse{
			OrderCount:    orderCount,
			RevenueCents:  revenueCents,
			CustomerCount: customerCount,
			ProductCount:  productCount,
		})
	}
}
