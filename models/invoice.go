package models

import "time"

// Invoice is the billing record attached to a request once work is complete.
// It is written once at issuance; only PaidAt is set afterwards.
type Invoice struct {
	ID               string        `json:"id" gorm:"primaryKey;size:64"`
	ServiceRequestID string        `json:"-" gorm:"size:64;uniqueIndex;not null"`
	IssuedAt         time.Time     `json:"issuedAt" gorm:"not null"`
	PaidAt           *time.Time    `json:"paidAt,omitempty"`
	Items            []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID"`
	Tax              float64       `json:"tax" gorm:"type:decimal(10,2);not null"`
	Total            float64       `json:"total" gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a single line item on an invoice
type InvoiceItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"size:64;not null;index"`
	Description string  `json:"description" gorm:"size:255;not null"`
	Amount      float64 `json:"amount" gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
