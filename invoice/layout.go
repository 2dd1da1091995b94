// Package invoice renders a finalized order into a paginated PDF document.
// The layout is written against a small Canvas abstraction so the pagination
// rule can be tested without a PDF library.
package invoice

import (
	"fmt"
	"strings"

	"github.com/FathimaJufla/Ecommerce/models"
)

// Canvas is the drawing surface the layout writes to. Coordinates follow the
// classic PDF convention: origin at the bottom-left, y growing upward.
type Canvas interface {
	AddPage()
	// SetFont selects the body face; style is "" for regular, "B" for bold.
	SetFont(style string, size float64)
	Text(x, y float64, s string)
}

// Page geometry (US letter, points).
const (
	PageHeight   = 792.0
	LeftX        = 50.0
	TopY         = PageHeight - 50
	BottomMargin = 100.0
)

// Render draws the invoice for a finalized order. The order must carry its
// Customer and Items with each item's Product preloaded. It never mutates the
// order and may be called repeatedly.
func Render(cv Canvas, order models.Order) {
	cv.AddPage()

	cv.SetFont("B", 20)
	cv.Text(LeftX, TopY, "INVOICE")

	cv.SetFont("", 12)
	y := PageHeight - 100
	cv.Text(LeftX, y, "Order Number: "+order.OrderNumber)
	y -= 20
	cv.Text(LeftX, y, "Order Date: "+order.OrderDate.Format("2006-01-02 15:04:05"))
	y -= 20
	cv.Text(LeftX, y, "Customer: "+order.Customer.Username)
	y -= 20
	cv.Text(LeftX, y, "Email: "+order.Customer.Email)
	y -= 30

	cv.SetFont("B", 12)
	cv.Text(LeftX, y, "Shipping Address:")
	y -= 20
	cv.SetFont("", 10)
	for _, line := range strings.Split(order.ShippingAddress, "\n") {
		cv.Text(LeftX, y, line)
		y -= 15
	}
	y -= 20

	cv.SetFont("B", 12)
	cv.Text(LeftX, y, "Items:")
	y -= 20
	cv.SetFont("", 10)
	for i := range order.Items {
		item := &order.Items[i]
		cv.Text(LeftX, y, fmt.Sprintf("%s - Qty: %d - Price: $%s each",
			item.Product.Name, item.Quantity, item.Price.StringFixed(2)))
		y -= 15
		if y < BottomMargin {
			cv.AddPage()
			y = TopY
		}
	}
	y -= 20

	// Footer reports the stored total, not a recomputation
	cv.SetFont("B", 14)
	cv.Text(LeftX, y, "Total Amount: $"+order.TotalAmount.StringFixed(2))
	y -= 20
	cv.SetFont("", 10)
	cv.Text(LeftX, y, "Payment Method: "+order.PaymentMethod.Display())
}
