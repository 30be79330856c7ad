package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog product HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles searching products by name or barcode
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.CatalogSearchRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.catalogService.SearchProducts(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", response.NewProductListResponse(products))
}
