package http

import (
	"net/http"
	"strconv"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http/middleware"
	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalog *usecase.Catalog
}

func NewCatalogHandler(catalog *usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type productReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
}

// GET /catalog?category=&page=&limit=
func (h *CatalogHandler) List(c *gin.Context) {
	// unparsable paging falls back to the defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.catalog.List(c.Request.Context(), usecase.ListProductsInput{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /catalog/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, nonNil(cats))
}

// GET /catalog/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// POST /catalog (admin)
func (h *CatalogHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	caller, _ := middleware.PrincipalFrom(c)
	p, err := h.catalog.Create(c.Request.Context(), caller, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
		Rating:      req.Rating,
	})
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /catalog/:id (admin), partial update
func (h *CatalogHandler) Update(c *gin.Context) {
	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c)
		return
	}
	caller, _ := middleware.PrincipalFrom(c)
	p, err := h.catalog.Update(c.Request.Context(), caller, c.Param("id"), patch)
	if err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /catalog/:id (admin)
func (h *CatalogHandler) Delete(c *gin.Context) {
	caller, _ := middleware.PrincipalFrom(c)
	if err := h.catalog.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
