package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/config"
	cartControllers "github.com/FathimaJufla/Ecommerce/controllers/cart"
	invoiceControllers "github.com/FathimaJufla/Ecommerce/controllers/invoice"
	orderControllers "github.com/FathimaJufla/Ecommerce/controllers/order"
	"github.com/FathimaJufla/Ecommerce/middleware"
)

// SetupStoreRoutes registers the session-protected storefront pages plus the
// one JSON endpoint used by the cart page.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	pages := r.Group("/")
	pages.Use(middleware.RequireCustomer(db, cfg.SessionSecret))
	{
		// ──────────────── Shopping Cart ────────────────
		pages.GET("/add-to-cart/:product_id", cartControllers.AddToCart(db))
		pages.POST("/add-to-cart/:product_id", cartControllers.AddToCart(db))
		pages.GET("/cart", cartControllers.CartView(db))
		pages.GET("/remove-cart-item/:item_id", cartControllers.RemoveCartItem(db))
		pages.POST("/remove-cart-item/:item_id", cartControllers.RemoveCartItem(db))

		// ──────────────── Checkout & Orders ────────────────
		pages.GET("/buy-now/:product_id", orderControllers.BuyNow(db))
		pages.GET("/checkout", orderControllers.Checkout(db))
		pages.POST("/place-order", orderControllers.PlaceOrderHandler(db))
		pages.GET("/order-details/:order_id", orderControllers.OrderDetails(db))
		pages.GET("/download-invoice/:order_id", invoiceControllers.DownloadInvoice(db))
		pages.GET("/your-orders", orderControllers.YourOrders(db))
	}

	// Cart quantity updates answer JSON, so auth failure is a 403 body
	// instead of a login redirect.
	r.POST("/update-cart-item/:item_id",
		middleware.RequireCustomerJSON(db, cfg.SessionSecret), cartControllers.UpdateCartItem(db))
}
