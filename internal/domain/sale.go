package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus status of a product sale request
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusInProcess SaleStatus = "IN_PROCESS"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// SaleStatuses all known sale statuses
var SaleStatuses = []SaleStatus{
	SaleStatusPending,
	SaleStatusInProcess,
	SaleStatusCompleted,
	SaleStatusCancelled,
}

// ParseSaleStatus validates a raw status value
func ParseSaleStatus(s string) (SaleStatus, error) {
	for _, status := range SaleStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: sale status %q", ErrInvalidStatus, s)
}

// Sale purchase request for a product
type Sale struct {
	ID              int64
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ProductID       int64
	ProductName     string // joined, read-only
	ProductPrice    decimal.Decimal
	FinalPrice      *decimal.Decimal
	Status          SaleStatus
	NewsletterOptIn bool
	ClientNotes     *string
	AdminNotes      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectivePrice returns the negotiated price if set, otherwise the catalog price
func (s *Sale) EffectivePrice() decimal.Decimal {
	if s.FinalPrice != nil {
		return *s.FinalPrice
	}
	return s.ProductPrice
}
