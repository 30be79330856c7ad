package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService  *service.PrinterService
	settingsService *service.SettingsService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, settingsService *service.SettingsService) *PrinterHandler {
	return &PrinterHandler{
		printerService:  printerService,
		settingsService: settingsService,
	}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a sample invoice to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.printerService.TestPrint(settings)
	if err != nil {
		// Return the invoice anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"invoice": response.NewInvoiceResponse(doc),
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"invoice": response.NewInvoiceResponse(doc),
	})
}
