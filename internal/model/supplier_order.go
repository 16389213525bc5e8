package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierOrderStatus constants. Received and cancelled orders are terminal
// for the edit workflow: their item sets can no longer be changed.
const (
	SupplierOrderStatusPending   = "pending"
	SupplierOrderStatusReceived  = "received"
	SupplierOrderStatusCancelled = "cancelled"
)

// ValidSupplierOrderStatus reports whether s is one of the supplier order status values.
func ValidSupplierOrderStatus(s string) bool {
	switch s {
	case SupplierOrderStatusPending, SupplierOrderStatusReceived, SupplierOrderStatusCancelled:
		return true
	}
	return false
}

// SupplierOrder records a purchase from a supplier. InvoiceImage holds either
// a single opaque image reference or a JSON-encoded array of references;
// InvoiceImages handles both shapes.
type SupplierOrder struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SupplierID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier      *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	InvoiceNumber string              `gorm:"type:varchar(100)" json:"invoice_number"`
	Status        string              `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalAmount   float64             `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	InvoiceImage  string              `gorm:"type:text" json:"invoice_image"`
	Notes         string              `gorm:"type:text" json:"notes"`
	Items         []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID" json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Editable reports whether item-level edits are still allowed.
func (o SupplierOrder) Editable() bool {
	return o.Status == SupplierOrderStatusPending
}

// InvoiceImages returns the stored invoice image references. The field is a
// JSON array for orders saved with multiple images and a bare reference for
// older single-image orders.
func (o SupplierOrder) InvoiceImages() []string {
	if o.InvoiceImage == "" {
		return nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(o.InvoiceImage), &refs); err == nil {
		return refs
	}
	return []string{o.InvoiceImage}
}

// SupplierOrderItem is a purchase line. UnitPrice is the negotiated purchase
// price for this order, snapshotted independently of the product record.
type SupplierOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SupplierOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int       `gorm:"type:int;not null" json:"quantity"`
	UnitPrice       float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

// LineTotal returns quantity × unit price as an exact decimal.
func (i SupplierOrderItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.UnitPrice).Mul(decimal.NewFromInt(int64(i.Quantity)))
}
