package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/shopdesk-pos/pkg/pagination"
)

// SaleHandler handles recorded sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing recorded sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}
	sales, total, err := h.saleService.ListSales(c.Request.Context(), filter.Search, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(
		response.NewSaleSummaryListResponse(sales),
		pagination.NewPagination(params.Page, params.PerPage, total),
	)
	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

// Get handles retrieving a recorded sale
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", response.NewSaleDetailResponse(sale))
}

// Reprint rebuilds the invoice of a recorded sale and prints it
func (h *SaleHandler) Reprint(c *gin.Context) {
	var req request.ReprintRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.saleService.Reprint(c.Request.Context(), c.Param("id"), req.ShouldPrint())
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Invoice rebuilt"
	switch {
	case result.PrintError != "":
		message = "Invoice rebuilt but printing failed"
	case result.Printed:
		message = "Invoice reprinted"
	}
	response.OK(c, message, response.NewSaleResultResponse(result))
}

// InvoicePDF streams the A4 invoice of a recorded sale
func (h *SaleHandler) InvoicePDF(c *gin.Context) {
	data, doc, err := h.saleService.InvoicePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	name := doc.InvoiceNumber
	if name == "" {
		name = c.Param("id")
	}
	response.PDF(c, "invoice-"+name+".pdf", data)
}
