package request

// ReprintRequest is the request body for reprinting a recorded sale.
// Print defaults to true when omitted.
type ReprintRequest struct {
	Print *bool `json:"print"`
}

// ShouldPrint reports whether the invoice should be sent to the printer.
func (r *ReprintRequest) ShouldPrint() bool {
	return r.Print == nil || *r.Print
}
