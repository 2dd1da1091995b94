package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FathimaJufla/Ecommerce/config"
	orderControllers "github.com/FathimaJufla/Ecommerce/controllers/order"
	productControllers "github.com/FathimaJufla/Ecommerce/controllers/product"
	"github.com/FathimaJufla/Ecommerce/middleware"
)

// SetupAdminRoutes registers the "/admin/*" endpoints. Requires the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		// ──────────────── Products ────────────────
		adminGroup.GET("/products", productControllers.GetAllProducts(db))
		adminGroup.GET("/products/:id", productControllers.GetProductByID(db))
		adminGroup.POST("/products", productControllers.CreateProduct(db, cfg.UploadsDir))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(db, cfg.UploadsDir))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(db))

		// ──────────────── Orders ────────────────
		adminGroup.GET("/orders", orderControllers.GetAllOrders(db))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		adminGroup.PUT("/orders/:id/status", orderControllers.UpdateOrderStatus(db))
	}
}
