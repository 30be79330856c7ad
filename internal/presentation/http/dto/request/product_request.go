package request

// CatalogSearchRequest represents product and customer search parameters
type CatalogSearchRequest struct {
	Search string `form:"search" binding:"max=100"`
}

// SaleFilterRequest represents sales history filter parameters
type SaleFilterRequest struct {
	Search  string `form:"search" binding:"max=100"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
