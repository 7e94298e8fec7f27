package controllers

import (
	"net/http"

	"github.com/hyuyu1012/chaeum/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *services.NutritionCatalog
}

func NewCatalogController(catalog *services.NutritionCatalog) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GET /catalog/search?q=김치
func (cc *CatalogController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "results": cc.Catalog.Search(q)})
}
