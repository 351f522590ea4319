// internal/interfaces/http/handlers/collection.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CollectionHandler handles collection endpoints
type CollectionHandler struct {
	catalogService *catalog.Service
	config         *config.Config
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(db *gorm.DB, cfg *config.Config) *CollectionHandler {
	return &CollectionHandler{
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// GetCollections handles GET /collections
func (h *CollectionHandler) GetCollections(c *gin.Context) {
	collections, err := h.catalogService.GetCollections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve collections",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Collections retrieved successfully",
		"data":    collections,
	})
}

// GetCollection handles GET /collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	collection, err := h.catalogService.GetCollection(id)
	if err != nil {
		if errors.Is(err, catalog.ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Collection retrieved successfully",
		"data":    collection,
	})
}
