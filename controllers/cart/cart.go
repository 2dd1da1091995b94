package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/middleware"
	"github.com/FathimaJufla/Ecommerce/models"
)

// GetOrCreateCart returns the customer's cart, creating an empty one on first
// access. Idempotent; callable from any entry point.
func GetOrCreateCart(db *gorm.DB, customerID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("customer_id = ?", customerID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{CustomerID: customerID}
		if err := db.Create(&cart).Error; err != nil {
			return models.Cart{}, err
		}
		return cart, nil
	}
	return cart, err
}

// CartItems loads the cart's lines with their products, in insertion order.
func CartItems(db *gorm.DB, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("cart_id = ?", cartID).Order("id asc").Find(&items).Error
	return items, err
}

// CartQuantity is the total item count shown on the home page badge.
func CartQuantity(db *gorm.DB, cartID uint) int {
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").Scan(&count)
	return int(count)
}

func cartTotal(db *gorm.DB, cartID uint) (decimal.Decimal, error) {
	items, err := CartItems(db, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return total, nil
}

// GET|POST /add-to-cart/:product_id
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.String(http.StatusNotFound, "Product not found")
			return
		}

		// Inactive products cannot be added
		var product models.Product
		if err := db.Where("is_active = ?", true).First(&product, productID).Error; err != nil {
			c.String(http.StatusNotFound, "Product not found")
			return
		}

		cart, err := GetOrCreateCart(db, customer.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart")
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  1,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.String(http.StatusInternalServerError, "Failed to add item to cart")
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to fetch cart item")
			return
		}

		// Same product again increments the existing line
		item.Quantity++
		if err := db.Save(&item).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to update cart item")
			return
		}
		c.Redirect(http.StatusFound, "/")
	}
}

// GET /cart
func CartView(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		cart, err := GetOrCreateCart(db, customer.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart")
			return
		}

		items, err := CartItems(db, cart.CartID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart items")
			return
		}

		if len(items) == 0 {
			c.HTML(http.StatusOK, "cart.html", gin.H{"empty": true, "user": customer, "error": c.Query("error")})
			return
		}

		total := decimal.Zero
		for i := range items {
			total = total.Add(items[i].Subtotal())
		}

		c.HTML(http.StatusOK, "cart.html", gin.H{
			"cart_items": items,
			"total":      total.StringFixed(2),
			"user":       customer,
			"error":      c.Query("error"),
		})
	}
}

// POST /update-cart-item/:item_id (form field action: increase|decrease)
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var item models.CartItem
		if err := db.Preload("Product").First(&item, itemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		// Ownership failure is reported distinctly from not-found
		var cart models.Cart
		if err := db.First(&cart, item.CartID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		if cart.CustomerID != customer.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}

		switch c.PostForm("action") {
		case "increase":
			item.Quantity++
		case "decrease":
			if item.Quantity > 1 {
				item.Quantity--
			} else {
				// Decrementing to zero removes the line
				if err := db.Delete(&item).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"deleted": true})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		total, err := cartTotal(db, item.CartID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cart total"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"quantity":   item.Quantity,
			"item_total": item.Subtotal().InexactFloat64(),
			"cart_total": total.InexactFloat64(),
		})
	}
}

// GET|POST /remove-cart-item/:item_id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := middleware.CurrentCustomer(c)

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.String(http.StatusNotFound, "Cart item not found")
			return
		}

		var item models.CartItem
		if err := db.First(&item, itemID).Error; err != nil {
			c.String(http.StatusNotFound, "Cart item not found")
			return
		}

		var cart models.Cart
		if err := db.First(&cart, item.CartID).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to load cart")
			return
		}
		if cart.CustomerID != customer.ID {
			c.Redirect(http.StatusFound, "/cart?error=unauthorized")
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.String(http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}
