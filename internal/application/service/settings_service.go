package service

import (
	"context"
	"strings"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SettingsService handles shop, bill, credit and printer settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     *entity.ShopSettings
}

// NewSettingsService creates a new settings service. defaults is saved the
// first time settings are read from an empty table.
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults *entity.ShopSettings) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetSettings retrieves the shop settings, creating defaults if none exist
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = s.newDefaults()
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

func (s *SettingsService) newDefaults() *entity.ShopSettings {
	if s.defaults == nil {
		return &entity.ShopSettings{
			ShopName:   "My Shop",
			Currency:   "Rs",
			CreditDays: 30,
			PaperSize:  entity.PaperSize80mm,
			AutoPrint:  true,
		}
	}
	settings := *s.defaults
	return &settings
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	ShopName           string
	Address            string
	Phone              string
	Email              string
	GST                string
	ShowLogo           bool
	ShowGST            bool
	FooterText         string
	TermsAndConditions string
	Currency           string
	DefaultCreditLimit decimal.Decimal
	CreditDays         int
	PrinterName        string
	PaperSize          string
	InvoiceTemplate    string
	AutoPrint          bool
}

// Validate checks the settings input
func (i *UpdateSettingsInput) Validate() error {
	var errs []apperror.FieldError
	if strings.TrimSpace(i.ShopName) == "" {
		errs = append(errs, apperror.FieldError{Field: "shop_name", Message: "Shop name is required"})
	}
	switch i.PaperSize {
	case "", entity.PaperSize58mm, entity.PaperSize80mm, entity.PaperSizeA4:
	default:
		errs = append(errs, apperror.FieldError{Field: "paper_size", Message: "Paper size must be 58mm, 80mm or A4"})
	}
	if i.DefaultCreditLimit.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "default_credit_limit", Message: "Credit limit cannot be negative"})
	}
	if i.CreditDays < 0 {
		errs = append(errs, apperror.FieldError{Field: "credit_days", Message: "Credit days cannot be negative"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// UpdateSettings replaces the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings.ShopName = strings.TrimSpace(input.ShopName)
	settings.Address = input.Address
	settings.Phone = input.Phone
	settings.Email = input.Email
	settings.GST = input.GST
	settings.ShowLogo = input.ShowLogo
	settings.ShowGST = input.ShowGST
	settings.FooterText = input.FooterText
	settings.TermsAndConditions = input.TermsAndConditions
	if input.Currency != "" {
		settings.Currency = input.Currency
	}
	settings.DefaultCreditLimit = input.DefaultCreditLimit.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	settings.CreditDays = input.CreditDays
	settings.PrinterName = input.PrinterName
	if input.PaperSize != "" {
		settings.PaperSize = input.PaperSize
	}
	if input.InvoiceTemplate != "" {
		settings.InvoiceTemplate = enum.ParseInvoiceTemplate(input.InvoiceTemplate)
	}
	settings.AutoPrint = input.AutoPrint

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
