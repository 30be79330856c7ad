package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
)

// CartHandler handles cart session HTTP requests
type CartHandler struct {
	cartService *service.CartService
	saleService *service.SaleService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, saleService *service.SaleService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		saleService: saleService,
	}
}

// Open starts a new cart session
func (h *CartHandler) Open(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}

	view := h.cartService.Open(operatorID)
	response.Created(c, "Cart opened", response.NewCartResponse(view))
}

// Get returns a cart with provisional totals
func (h *CartHandler) Get(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.cartService.Get(operatorID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", response.NewCartResponse(view))
}

// Discard deletes a cart session
func (h *CartHandler) Discard(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.cartService.Discard(operatorID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddItem adds a product to the cart, merging into an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), operatorID, id, req.ProductID, req.Units())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", response.NewCartResponse(view))
}

// UpdateItem changes the quantity or unit price of a line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Quantity == nil && req.UnitPrice == nil {
		response.BadRequest(c, "Nothing to update")
		return
	}

	view, err := h.cartService.UpdateItem(operatorID, id, c.Param("product_id"), service.UpdateItemInput{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item updated", response.NewCartResponse(view))
}

// RemoveItem deletes a line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(operatorID, id, c.Param("product_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item removed", response.NewCartResponse(view))
}

// Reset clears the cart and the checkout inputs
func (h *CartHandler) Reset(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.cartService.Reset(operatorID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart reset", response.NewCartResponse(view))
}

// SetCheckout sets the customer, discount, payment and invoice details
func (h *CartHandler) SetCheckout(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	checkout, err := req.ToCheckout()
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.cartService.SetCheckout(operatorID, id, checkout)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout updated", response.NewCartResponse(view))
}

// Submit records the cart as a sale and returns its invoice
func (h *CartHandler) Submit(c *gin.Context) {
	operatorID, ok := requireOperator(c)
	if !ok {
		return
	}
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.saleService.Checkout(c.Request.Context(), operatorID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale completed"
	if result.PrintError != "" {
		message = "Sale completed but printing failed"
	}
	response.Created(c, message, response.NewSaleResultResponse(result))
}
