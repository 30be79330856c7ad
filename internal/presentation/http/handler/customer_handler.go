package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
)

// CustomerHandler handles the customer picker
type CustomerHandler struct {
	catalogService *service.CatalogService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(catalogService *service.CatalogService) *CustomerHandler {
	return &CustomerHandler{catalogService: catalogService}
}

// List handles searching customers by name or phone
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CatalogSearchRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	customers, err := h.catalogService.SearchCustomers(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", response.NewCustomerListResponse(customers))
}
