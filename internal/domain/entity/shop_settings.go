package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Paper sizes understood by the renderers.
const (
	PaperSize58mm = "58mm"
	PaperSize80mm = "80mm"
	PaperSizeA4   = "A4"
)

// ShopSettings is the single row of shop, bill and printer preferences.
type ShopSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Shop
	ShopName string `gorm:"size:255;not null" json:"shop_name"`
	Address  string `gorm:"size:500" json:"address"`
	Phone    string `gorm:"size:50" json:"phone"`
	Email    string `gorm:"size:255" json:"email"`
	GST      string `gorm:"size:50" json:"gst"`

	// Bill
	ShowLogo           bool   `gorm:"default:false" json:"show_logo"`
	ShowGST            bool   `gorm:"default:false" json:"show_gst"`
	FooterText         string `gorm:"type:text" json:"footer_text"`
	TermsAndConditions string `gorm:"type:text" json:"terms_and_conditions"`
	Currency           string `gorm:"size:10;default:'Rs'" json:"currency"`

	// Credit
	DefaultCreditLimit int64 `gorm:"default:0" json:"default_credit_limit"` // Stored in paisa
	CreditDays         int   `gorm:"default:30" json:"credit_days"`

	// Printer
	PrinterName     string               `gorm:"size:255" json:"printer_name"`
	PaperSize       string               `gorm:"size:10;default:'80mm'" json:"paper_size"`
	InvoiceTemplate enum.InvoiceTemplate `gorm:"default:0" json:"invoice_template"`
	AutoPrint       bool                 `gorm:"default:true" json:"auto_print"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *ShopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}

// Header returns the shop identity passed to the invoice builder.
func (s *ShopSettings) Header() ShopHeader {
	return ShopHeader{
		Name:               s.ShopName,
		Address:            s.Address,
		Phone:              s.Phone,
		Email:              s.Email,
		GST:                s.GST,
		ShowGST:            s.ShowGST,
		FooterText:         s.FooterText,
		TermsAndConditions: s.TermsAndConditions,
		Currency:           s.Currency,
	}
}

// ThermalWidth returns the receipt width in characters for the paper size.
func (s *ShopSettings) ThermalWidth() int {
	if s.PaperSize == PaperSize58mm {
		return 32
	}
	return 48
}

// GetDefaultCreditLimitDecimal returns the credit limit for display
func (s *ShopSettings) GetDefaultCreditLimitDecimal() float64 {
	return float64(s.DefaultCreditLimit) / 100
}

// MarshalJSON reports the credit limit in rupees
func (s ShopSettings) MarshalJSON() ([]byte, error) {
	type Alias ShopSettings
	return json.Marshal(&struct {
		Alias
		DefaultCreditLimit float64 `json:"default_credit_limit"`
	}{
		Alias:              Alias(s),
		DefaultCreditLimit: s.GetDefaultCreditLimitDecimal(),
	})
}
