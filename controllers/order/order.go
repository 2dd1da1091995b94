package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/FathimaJufla/Ecommerce/controllers/cart"
	"github.com/FathimaJufla/Ecommerce/middleware"
	"github.com/FathimaJufla/Ecommerce/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
	ErrMissingAddress  = errors.New("shipping address is required")
	ErrMissingPayment  = errors.New("payment method is required")
)

// PlaceOrderInput unifies the two checkout modes. SingleProductID == 0 means
// cart mode.
type PlaceOrderInput struct {
	CustomerID      uint
	ShippingAddress string
	PaymentMethod   models.PaymentMethod
	SingleProductID uint
	Quantity        int
}

const orderNumberAttempts = 3

// freeOrderNumber generates an order number that is not yet taken. Collisions
// over a 36^10 space are near-impossible, but the column is unique so the
// lookup is bounded-retried anyway.
func freeOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number := models.NewOrderNumber()
		var existing models.Order
		err := tx.Select("id").Where("order_number = ?", number).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a unique order number")
}

// PlaceOrder converts the cart (or a single ad-hoc selection) into an Order.
// The whole workflow runs in one transaction: the order header, its items and
// the cart clear all commit or all roll back. In cart mode the cart lines are
// read FOR UPDATE on postgres so two concurrent checkouts cannot both consume
// the same cart.
func PlaceOrder(db *gorm.DB, in PlaceOrderInput) (models.Order, error) {
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return models.Order{}, ErrMissingAddress
	}
	if in.PaymentMethod == "" {
		return models.Order{}, ErrMissingPayment
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		var items []models.OrderItem
		var cartID uint

		if in.SingleProductID != 0 {
			qty := in.Quantity
			if qty < 1 {
				qty = 1
			}

			var product models.Product
			if err := tx.First(&product, in.SingleProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			total = product.Price.Mul(decimal.NewFromInt(int64(qty)))
			items = []models.OrderItem{{
				ProductID: product.ID,
				Quantity:  qty,
				Price:     product.Price,
			}}
		} else {
			cart, err := cartControllers.GetOrCreateCart(tx, in.CustomerID)
			if err != nil {
				return err
			}
			cartID = cart.CartID

			q := tx.Preload("Product").Where("cart_id = ?", cartID).Order("id asc")
			if tx.Dialector.Name() == "postgres" {
				// sqlite has no FOR UPDATE
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var cartItems []models.CartItem
			if err := q.Find(&cartItems).Error; err != nil {
				return err
			}
			if len(cartItems) == 0 {
				return ErrEmptyCart
			}

			for _, it := range cartItems {
				// price snapshot from the live product, not the cart
				total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
				items = append(items, models.OrderItem{
					ProductID: it.ProductID,
					Quantity:  it.Quantity,
					Price:     it.Product.Price,
				})
			}
		}

		number, err := freeOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			CustomerID:      in.CustomerID,
			OrderDate:       time.Now(),
			TotalAmount:     total,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			Status:          models.OrderStatusPending,
			OrderNumber:     number,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Cart mode empties the cart; single-item mode never touches it
		if in.SingleProductID == 0 {
			if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_id":  order.CustomerID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount.StringFixed(2),
	}).Info("order placed")
	return order, nil
}

// GET /buy-now/:product_id
func BuyNow(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.String(http.StatusNotFound, "Product not found")
			return
		}

		var product models.Product
		if err := db.Where("is_active = ?", true).First(&product, productID).Error; err != nil {
			c.String(http.StatusNotFound, "Product not found")
			return
		}

		c.HTML(http.StatusOK, "checkout.html", gin.H{
			"product":     product,
			"quantity":    1,
			"total":       product.Price.StringFixed(2),
			"user":        customer,
			"single_item": true,
		})
	}
}

// GET /checkout
func Checkout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		cart, err := cartControllers.GetOrCreateCart(db, customer.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart")
			return
		}

		items, err := cartControllers.CartItems(db, cart.CartID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart items")
			return
		}
		if len(items) == 0 {
			c.Redirect(http.StatusFound, "/cart?error=empty")
			return
		}

		total := decimal.Zero
		for i := range items {
			total = total.Add(items[i].Subtotal())
		}

		c.HTML(http.StatusOK, "checkout.html", gin.H{
			"cart_items":  items,
			"total":       total.StringFixed(2),
			"user":        customer,
			"single_item": false,
		})
	}
}

// POST /place-order
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		shipping := c.PostForm("shipping_address")
		method, ok := models.ParsePaymentMethod(c.PostForm("payment_method"))
		if strings.TrimSpace(shipping) == "" || !ok {
			c.Redirect(http.StatusFound, "/checkout?error=missing_fields")
			return
		}

		var singleProductID uint
		if raw := c.PostForm("single_product_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				c.String(http.StatusNotFound, "Product not found")
				return
			}
			singleProductID = uint(id)
		}
		quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
		if err != nil || quantity < 1 {
			quantity = 1
		}

		order, err := PlaceOrder(db, PlaceOrderInput{
			CustomerID:      customer.ID,
			ShippingAddress: shipping,
			PaymentMethod:   method,
			SingleProductID: singleProductID,
			Quantity:        quantity,
		})
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.Redirect(http.StatusFound, "/cart?error=empty")
			return
		case errors.Is(err, ErrProductNotFound):
			c.String(http.StatusNotFound, "Product not found")
			return
		case err != nil:
			logrus.WithError(err).Error("place order failed")
			c.String(http.StatusInternalServerError, "Failed to place order")
			return
		}

		c.Redirect(http.StatusFound, fmt.Sprintf("/order-details/%d", order.ID))
	}
}

// GET /order-details/:order_id
func OrderDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		orderID, err := strconv.Atoi(c.Param("order_id"))
		if err != nil {
			c.String(http.StatusNotFound, "Order not found")
			return
		}

		// Scoping the query to the customer keeps foreign orders
		// indistinguishable from missing ones
		var order models.Order
		if err := db.Preload("Items.Product").
			Where("id = ? AND customer_id = ?", orderID, customer.ID).
			First(&order).Error; err != nil {
			c.String(http.StatusNotFound, "Order not found")
			return
		}

		c.HTML(http.StatusOK, "order_details.html", gin.H{"order": order, "user": customer})
	}
}

// GET /your-orders
func YourOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		var orders []models.Order
		if err := db.Where("customer_id = ?", customer.ID).
			Order("order_date DESC").Find(&orders).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load orders")
			return
		}

		c.HTML(http.StatusOK, "your_orders.html", gin.H{"orders": orders, "user": customer})
	}
}
