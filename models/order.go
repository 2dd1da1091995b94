package models

import (
	"crypto/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"

	PaymentUPI        PaymentMethod = "UPI"
	PaymentCard       PaymentMethod = "Card"
	PaymentCOD        PaymentMethod = "COD"
	PaymentNetBanking PaymentMethod = "Net Banking"
)

// ParseOrderStatus maps a form value to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

// ParsePaymentMethod maps a form value to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentUPI, PaymentCard, PaymentCOD, PaymentNetBanking:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

// Display is the human-readable label shown on invoices and order pages.
func (m PaymentMethod) Display() string {
	switch m {
	case PaymentCard:
		return "Credit/Debit Card"
	case PaymentCOD:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Customer        Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	OrderDate       time.Time       `json:"order_date"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20)" json:"payment_method"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	OrderNumber     string          `gorm:"size:50;uniqueIndex" json:"order_number"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"` // unit price snapshot at purchase time
}

// Subtotal is the snapshot price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const orderNumberLength = 10

// NewOrderNumber returns a random 10-character code over [A-Z0-9].
// Bytes past the largest multiple of 36 are rejected so each character is
// drawn uniformly.
func NewOrderNumber() string {
	const limit = 256 - 256%len(orderNumberAlphabet)

	out := make([]byte, 0, orderNumberLength)
	raw := make([]byte, orderNumberLength)
	for len(out) < orderNumberLength {
		if _, err := rand.Read(raw); err != nil {
			return "0000000000"
		}
		for _, b := range raw {
			if int(b) >= limit {
				continue
			}
			out = append(out, orderNumberAlphabet[int(b)%len(orderNumberAlphabet)])
			if len(out) == orderNumberLength {
				break
			}
		}
	}
	return string(out)
}

// BeforeCreate fills the generated fields. The order number is set once here
// and never regenerated on later saves.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = NewOrderNumber()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}
