package httpserver

import (
	"errors"
	"log"
	"net/http"

	"chickpick/internal/domain"
	reviewsvc "chickpick/internal/service/review"

	"github.com/gin-gonic/gin"
)

// Listing endpoints degrade to an empty result on storage failure so the
// storefront still renders; detail endpoints report errors normally.

func listProductsHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListProducts(c.Request.Context(), c.Query("category"))
		if err != nil {
			logger.Printf("catalog: list products: %v", err)
			products = nil
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func listFeaturedHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListFeatured(c.Request.Context())
		if err != nil {
			logger.Printf("catalog: list featured: %v", err)
			products = nil
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func listCategoriesHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			logger.Printf("catalog: list categories: %v", err)
			categories = nil
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, categories)
	}
}

func listReviewsHandler(catalogSvc catalogService, reviews reviewService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalogSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		summary, err := reviews.ListByProduct(c.Request.Context(), p.ID)
		if err != nil {
			logger.Printf("reviews: list product=%s: %v", p.ID, err)
			summary = &reviewsvc.Summary{Reviews: []domain.Review{}}
		}
		if summary.Reviews == nil {
			summary.Reviews = []domain.Review{}
		}
		c.JSON(http.StatusOK, summary)
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func createReviewHandler(catalogSvc catalogService, reviews reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		p, err := catalogSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		review, err := reviews.Create(c.Request.Context(), p.ID, currentUser(c).ID, req.Rating, req.Comment)
		if err != nil {
			if errors.Is(err, reviewsvc.ErrInvalidRating) {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
