package request

import (
	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest represents a shop settings update
type UpdateSettingsRequest struct {
	ShopName           string          `json:"shop_name" binding:"max=255"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone" binding:"max=50"`
	Email              string          `json:"email" binding:"omitempty,email"`
	GST                string          `json:"gst" binding:"max=50"`
	ShowLogo           bool            `json:"show_logo"`
	ShowGST            bool            `json:"show_gst"`
	FooterText         string          `json:"footer_text"`
	TermsAndConditions string          `json:"terms_and_conditions"`
	Currency           string          `json:"currency" binding:"max=10"`
	DefaultCreditLimit decimal.Decimal `json:"default_credit_limit"`
	CreditDays         int             `json:"credit_days"`
	PrinterName        string          `json:"printer_name" binding:"max=255"`
	PaperSize          string          `json:"paper_size"`
	InvoiceTemplate    string          `json:"invoice_template" binding:"omitempty,oneof=thermal a4"`
	AutoPrint          bool            `json:"auto_print"`
}

// ToInput converts the request into a settings service input
func (r *UpdateSettingsRequest) ToInput() *service.UpdateSettingsInput {
	return &service.UpdateSettingsInput{
		ShopName:           r.ShopName,
		Address:            r.Address,
		Phone:              r.Phone,
		Email:              r.Email,
		GST:                r.GST,
		ShowLogo:           r.ShowLogo,
		ShowGST:            r.ShowGST,
		FooterText:         r.FooterText,
		TermsAndConditions: r.TermsAndConditions,
		Currency:           r.Currency,
		DefaultCreditLimit: r.DefaultCreditLimit,
		CreditDays:         r.CreditDays,
		PrinterName:        r.PrinterName,
		PaperSize:          r.PaperSize,
		InvoiceTemplate:    r.InvoiceTemplate,
		AutoPrint:          r.AutoPrint,
	}
}
